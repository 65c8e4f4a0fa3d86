package importer

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// Unmapped marks a field without a bound column.
	Unmapped = -1

	// PreviewEmpty is shown for a blank sample cell.
	PreviewEmpty = "(empty)"
	// PreviewNotApplicable is shown when the column or sample row does not exist.
	PreviewNotApplicable = "N/A"

	previewMaxRunes = 30
)

// ColumnMap is the confirmed column index → field keys mapping consumed by the
// normalizer. A column bound to several fields feeds all of them.
type ColumnMap map[int][]string

// Columns returns the mapped column indices in ascending order.
func (m ColumnMap) Columns() []int {
	columns := make([]int, 0, len(m))
	for column := range m {
		columns = append(columns, column)
	}
	sort.Ints(columns)
	return columns
}

// ColumnMapper holds the operator's field → column bindings for one sheet.
type ColumnMapper struct {
	catalog  []FieldDefinition
	sheet    *Sheet
	bindings map[string]int
}

func NewColumnMapper(catalog []FieldDefinition, sheet *Sheet) *ColumnMapper {
	if sheet == nil {
		sheet = &Sheet{}
	}
	return &ColumnMapper{
		catalog:  catalog,
		sheet:    sheet,
		bindings: make(map[string]int, len(catalog)),
	}
}

func (m *ColumnMapper) Catalog() []FieldDefinition {
	return m.catalog
}

func (m *ColumnMapper) Headers() []string {
	return m.sheet.Headers
}

// SetBinding binds fieldKey to column; a negative column clears the binding.
// Keys are not checked against the catalog here, readiness is evaluated lazily.
func (m *ColumnMapper) SetBinding(fieldKey string, column int) {
	if column < 0 {
		delete(m.bindings, fieldKey)
		return
	}
	m.bindings[fieldKey] = column
}

func (m *ColumnMapper) Binding(fieldKey string) (int, bool) {
	column, ok := m.bindings[fieldKey]
	return column, ok
}

// Bindings returns a copy of the current field → column bindings.
func (m *ColumnMapper) Bindings() map[string]int {
	out := make(map[string]int, len(m.bindings))
	for key, column := range m.bindings {
		out[key] = column
	}
	return out
}

// IsReady reports whether every required field has a bound column.
func (m *ColumnMapper) IsReady() bool {
	return len(m.Missing()) == 0
}

// Missing lists the required fields that are still unbound, in catalog order.
func (m *ColumnMapper) Missing() []FieldDefinition {
	var missing []FieldDefinition
	for _, field := range m.catalog {
		if !field.Required {
			continue
		}
		if _, ok := m.bindings[field.Key]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// PreviewValue returns a short rendering of column in data row sampleRow.
func (m *ColumnMapper) PreviewValue(column, sampleRow int) string {
	if column < 0 || sampleRow < 0 || sampleRow >= len(m.sheet.Rows) {
		return PreviewNotApplicable
	}
	row := m.sheet.Rows[sampleRow]
	if column >= len(row) {
		return PreviewNotApplicable
	}
	value := strings.TrimSpace(row[column])
	if value == "" {
		return PreviewEmpty
	}
	return truncatePreview(value)
}

func truncatePreview(value string) string {
	if utf8.RuneCountInString(value) <= previewMaxRunes {
		return value
	}
	runes := []rune(value)
	return string(runes[:previewMaxRunes-1]) + "…"
}

// Confirm returns the inverse column → fields mapping for catalog fields. It fails with a
// *MappingIncompleteError while any required field is unbound.
func (m *ColumnMapper) Confirm() (ColumnMap, error) {
	if missing := m.Missing(); len(missing) > 0 {
		return nil, &MappingIncompleteError{Missing: missing}
	}

	columns := make(ColumnMap, len(m.bindings))
	for _, field := range m.catalog {
		column, ok := m.bindings[field.Key]
		if !ok {
			continue
		}
		columns[column] = append(columns[column], field.Key)
	}
	return columns, nil
}

// SetBindingValue binds fieldKey from a textual column index as submitted by
// forms and mapping files. An empty or non-numeric value clears the binding.
func (m *ColumnMapper) SetBindingValue(fieldKey, raw string) {
	column, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		m.SetBinding(fieldKey, Unmapped)
		return
	}
	m.SetBinding(fieldKey, column)
}
