package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PositionalRow is one data row addressed by column index.
type PositionalRow []string

// Cell returns the trimmed value at column, or "" when the column is out of range.
func (r PositionalRow) Cell(column int) string {
	if column < 0 || column >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[column])
}

// HeaderIndexedRow is one data row addressed by normalized header label.
type HeaderIndexedRow struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the trimmed value of the first label present in the row.
func (r HeaderIndexedRow) Get(labels ...string) string {
	for _, label := range labels {
		if value, ok := r.Values[normalizeHeader(label)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Has reports whether any of the labels is a column of the row.
func (r HeaderIndexedRow) Has(labels ...string) bool {
	for _, label := range labels {
		if _, ok := r.Values[normalizeHeader(label)]; ok {
			return true
		}
	}
	return false
}

// IndexRow converts a positional row into a header-indexed one. When a header
// label repeats, the first column carrying it wins.
func IndexRow(headers []string, row PositionalRow, rowNumber int) HeaderIndexedRow {
	values := make(map[string]string, len(headers))
	for col, header := range headers {
		key := normalizeHeader(header)
		if _, exists := values[key]; exists {
			continue
		}
		values[key] = row.Cell(col)
	}
	return HeaderIndexedRow{RowNumber: rowNumber, Values: values}
}

// normalizeHeader lowercases, folds accents, and drops separators so that
// "Teléfono", "telefono" and "TELE-FONO" compare equal.
func normalizeHeader(input string) string {
	folded := foldHeader(input)
	folded = strings.ReplaceAll(folded, "_", "")
	folded = strings.ReplaceAll(folded, "-", "")
	folded = strings.ReplaceAll(folded, ".", "")
	folded = strings.ReplaceAll(folded, " ", "")
	return folded
}

// headerWords folds a header like normalizeHeader but keeps word boundaries:
// "Estado_civil" and "ESTADO CIVIL" both become "estado civil".
func headerWords(input string) string {
	folded := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(foldHeader(input))
	return strings.Join(strings.Fields(folded), " ")
}

func foldHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, trimmed); err == nil {
		trimmed = folded
	}
	return trimmed
}
