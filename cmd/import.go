package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hrimport/config"
	"hrimport/importer"
	"hrimport/storage"
)

var (
	importInputs   []string
	importFormat   string
	importStrategy string
	importMapping  string
	importDBPath   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import employee rosters into a local SQLite database",
	Long: `Read roster files, map their columns to employee fields, normalize each row and store new employees.

Strategy "structured" reads the first sheet of a workbook (or a CSV file) with the first row as headers.
Columns are resolved from header aliases unless --mapping points to a file saved by "hrimport map".
Strategy "legacy" reads tab-delimited text extracts with a fixed column layout; only lines carrying
the configured active status are read.

Rows whose status is not active, rows without national ID, repeated national IDs within a file and
national IDs already stored are skipped. Each file is inserted all-or-nothing.
When --format is omitted, format is inferred from each input file extension.`,
	Example: `
  # Import one workbook
  hrimport import -i Nomina2026.xlsx --db ./hrimport.db

  # Import several files
  hrimport import -i altas-enero.xlsx -i altas-febrero.csv

  # Import with a saved column mapping
  hrimport import -i Nomina2026.xls --mapping ./nomina.mapping.yaml

  # Import a legacy text extract
  hrimport import -i legajos.txt --strategy legacy

  # Import with custom config file
  hrimport --configFile ./custom-hrimport.yaml import -i ./roster.xlsx
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		strategy, err := resolveStrategy(importStrategy, *cfg)
		if err != nil {
			return err
		}

		var mapping *importer.MappingFile
		if strings.TrimSpace(importMapping) != "" {
			loaded, err := importer.LoadMapping(importMapping)
			if err != nil {
				return err
			}
			mapping = &loaded
		}

		store, err := storage.OpenSQLite(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		im := newImporter(*cfg, store, commandLogger(cmd))
		for _, input := range importInputs {
			source := importer.Source{Path: input, Format: importFormat, Strategy: strategy}
			outcome, err := runImport(cmd.Context(), im, source, mapping)
			if err != nil {
				return fmt.Errorf("import %s: %w", input, err)
			}
			fmt.Println(describeOutcome(input, outcome))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel|xls|text (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVarP(&importStrategy, "strategy", "s", "", "Import strategy: structured|legacy (default from config)")
	importCmd.Flags().StringVarP(&importMapping, "mapping", "m", "", "Column mapping file saved by \"hrimport map\"")
	importCmd.Flags().StringVar(&importDBPath, "db", "./hrimport.db", "Path to local SQLite database")

	_ = importCmd.MarkFlagRequired("input")
}

func resolveStrategy(flagValue string, cfg config.Config) (importer.Strategy, error) {
	if strings.TrimSpace(flagValue) != "" {
		return importer.ParseStrategy(flagValue)
	}
	return importer.ParseStrategy(cfg.Import.Strategy)
}

func newImporter(cfg config.Config, store importer.EmployeeStore, logger *logrus.Entry) *importer.Importer {
	return &importer.Importer{
		Store:      store,
		Normalizer: importer.NewNormalizer(cfg.NormalizerOptions()),
		Catalog:    cfg.Catalog(),
		Legacy:     cfg.LegacyOptions(),
		Logger:     logger,
	}
}

// runImport imports one source. A mapping file replaces header resolution and
// must bind every required field.
func runImport(ctx context.Context, im *importer.Importer, source importer.Source, mapping *importer.MappingFile) (*importer.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if mapping == nil {
		return im.Import(ctx, source)
	}

	sheet, err := im.Read(source)
	if err != nil {
		return nil, err
	}
	mapper := importer.NewColumnMapper(im.Catalog, sheet)
	mapping.Apply(mapper)
	columns, err := mapper.Confirm()
	if err != nil {
		return nil, err
	}
	source.Columns = columns

	prepared, err := im.Prepare(sheet, source)
	if err != nil {
		return nil, err
	}
	return im.Commit(ctx, prepared, nil)
}

func describeOutcome(input string, outcome *importer.Outcome) string {
	details := fmt.Sprintf("Rows read: %d, Rows excluded by status: %d, Rows without national ID: %d, Duplicates in file: %d, Already stored: %d",
		outcome.RowsRead,
		outcome.RowsExcluded,
		outcome.RowsMissingKey,
		outcome.DuplicatesInFile,
		outcome.DuplicatesInStore,
	)
	if outcome.Kind == importer.OutcomeNothingToImport {
		return fmt.Sprintf("Nothing to import from %s. %s", input, details)
	}
	return fmt.Sprintf("Import completed for %s. Employees imported: %d, Skipped: %d. %s", input, outcome.Inserted, outcome.Skipped, details)
}
