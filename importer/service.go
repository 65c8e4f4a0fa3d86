package importer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"hrimport/employee"
	"hrimport/internal/classify"
)

// EmployeeStore is the persistence boundary of the import pipeline. The store
// assigns record identity.
type EmployeeStore interface {
	ListNationalIDs(ctx context.Context) (map[string]struct{}, error)
	InsertEmployees(ctx context.Context, records []employee.Record) (int, error)
}

type OutcomeKind string

const (
	OutcomeImported        OutcomeKind = "imported"
	OutcomeNothingToImport OutcomeKind = "nothing-to-import"
)

type Outcome struct {
	Kind              OutcomeKind `json:"outcome"`
	RowsRead          int         `json:"rowsRead"`
	RowsExcluded      int         `json:"rowsExcluded"`
	RowsMissingKey    int         `json:"rowsMissingKey"`
	DuplicatesInFile  int         `json:"duplicatesInFile"`
	DuplicatesInStore int         `json:"duplicatesInStore"`
	Skipped           int         `json:"skipped"`
	Inserted          int         `json:"inserted"`
}

// Source describes one file to import.
type Source struct {
	Path string
	// Name is recorded as provenance; defaults to the base name of Path.
	Name     string
	Format   string
	Strategy Strategy
	// Columns is an operator-confirmed mapping. When nil, columns are resolved
	// from header aliases (structured) or the fixed layout (legacy).
	Columns ColumnMap
}

func (s Source) displayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return filepath.Base(s.Path)
}

// Prepared is a normalized batch before duplicate filtering.
type Prepared struct {
	Records        []employee.Record
	RowsRead       int
	RowsExcluded   int
	RowsMissingKey int
}

type Importer struct {
	Store      EmployeeStore
	Normalizer *Normalizer
	Catalog    []FieldDefinition
	Legacy     LegacyOptions
	Logger     *logrus.Entry
}

func (im *Importer) logger() *logrus.Entry {
	if im.Logger != nil {
		return im.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func (im *Importer) catalog() []FieldDefinition {
	if len(im.Catalog) > 0 {
		return im.Catalog
	}
	return EmployeeCatalog()
}

// Read parses the source file into a sheet.
func (im *Importer) Read(source Source) (*Sheet, error) {
	reader, err := ReaderFor(source.Strategy, source.Format, source.Path, im.Legacy)
	if err != nil {
		return nil, err
	}
	return reader.Read(source.Path)
}

// Prepare resolves columns and normalizes every row of sheet.
func (im *Importer) Prepare(sheet *Sheet, source Source) (*Prepared, error) {
	columns, err := im.columnsFor(sheet, source)
	if err != nil {
		return nil, err
	}

	normalizer := im.Normalizer
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizerOptions{StatusFilter: true})
	}

	prepared := &Prepared{
		Records:  make([]employee.Record, 0, len(sheet.Rows)),
		RowsRead: len(sheet.Rows),
	}
	name := source.displayName()
	for i, row := range sheet.Rows {
		record, verdict := normalizer.Normalize(ExtractFields(row, columns))
		switch verdict {
		case ExcludedByStatus:
			prepared.RowsExcluded++
			continue
		case MissingNaturalKey:
			prepared.RowsMissingKey++
			continue
		}
		record.SourceFile = name
		record.SourceRow = sheet.RowNumber(i)
		prepared.Records = append(prepared.Records, record)
	}
	return prepared, nil
}

func (im *Importer) columnsFor(sheet *Sheet, source Source) (ColumnMap, error) {
	switch {
	case source.Columns != nil:
		return source.Columns, nil
	case source.Strategy == StrategyLegacy:
		return LegacyColumns(), nil
	default:
		return ResolveHeaderColumns(im.catalog(), sheet)
	}
}

// Import runs the whole pipeline for one source: read, normalize, drop
// duplicates within the file and against the store, then insert what is left
// in one call. Nothing is inserted when any step fails.
func (im *Importer) Import(ctx context.Context, source Source) (*Outcome, error) {
	log := im.logger().WithFields(logrus.Fields{
		"file":     source.displayName(),
		"strategy": string(source.Strategy),
	})

	sheet, err := im.Read(source)
	if err != nil {
		log.WithError(err).Error("read source failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{"headers": len(sheet.Headers), "rows": len(sheet.Rows)}).Debug("source read")

	prepared, err := im.Prepare(sheet, source)
	if err != nil {
		log.WithError(err).Warn("column mapping incomplete")
		return nil, err
	}
	return im.Commit(ctx, prepared, log)
}

// Commit filters a prepared batch for duplicates and inserts the remainder.
func (im *Importer) Commit(ctx context.Context, prepared *Prepared, log *logrus.Entry) (*Outcome, error) {
	if log == nil {
		log = im.logger()
	}

	existing, err := im.Store.ListNationalIDs(ctx)
	if err != nil {
		log.WithError(err).Error("list stored national ids failed")
		return nil, &StoreError{Op: "list national ids", Err: err}
	}

	batch := classify.ClassifyImportBatch(prepared.Records, existing)
	outcome := &Outcome{
		Kind:              OutcomeNothingToImport,
		RowsRead:          prepared.RowsRead,
		RowsExcluded:      prepared.RowsExcluded,
		RowsMissingKey:    prepared.RowsMissingKey,
		DuplicatesInFile:  len(batch.DuplicatesInFile),
		DuplicatesInStore: len(batch.DuplicatesInStore),
		Skipped:           batch.Skipped(),
	}
	fields := logrus.Fields{
		"rows":              outcome.RowsRead,
		"excluded":          outcome.RowsExcluded,
		"missing_key":       outcome.RowsMissingKey,
		"duplicates_file":   outcome.DuplicatesInFile,
		"duplicates_stored": outcome.DuplicatesInStore,
	}

	if len(batch.ToInsert) == 0 {
		log.WithFields(fields).Info("nothing to import")
		return outcome, nil
	}

	inserted, err := im.Store.InsertEmployees(ctx, batch.ToInsert)
	if err != nil {
		log.WithFields(fields).WithError(err).Error("insert employees failed")
		return nil, &StoreError{Op: "insert employees", Err: err}
	}
	outcome.Kind = OutcomeImported
	outcome.Inserted = inserted
	log.WithFields(fields).WithField("inserted", inserted).Info("import completed")
	return outcome, nil
}
