package importer

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	fuzzyMaxDistance  = 2
	fuzzyMinAliasSize = 6
	containsMinAlias  = 4
)

// headerForms holds one header in the two normalized shapes the passes compare.
type headerForms struct {
	compact string
	words   string
}

func newHeaderForms(value string) headerForms {
	return headerForms{compact: normalizeHeader(value), words: headerWords(value)}
}

type suggestionPass struct {
	exact   bool
	matches func(header, alias headerForms) bool
}

var (
	exactPass = suggestionPass{
		exact:   true,
		matches: func(header, alias headerForms) bool { return header.compact == alias.compact },
	}
	// wordPass matches an alias appearing as whole words inside a longer header,
	// so "N° Documento" finds "documento" but "Tareas" never finds "area".
	wordPass = suggestionPass{
		matches: func(header, alias headerForms) bool {
			return len(alias.compact) >= containsMinAlias &&
				strings.Contains(" "+header.words+" ", " "+alias.words+" ")
		},
	}
	fuzzyPass = suggestionPass{
		matches: func(header, alias headerForms) bool {
			return len(alias.compact) >= fuzzyMinAliasSize &&
				fuzzy.LevenshteinDistance(header.compact, alias.compact) <= fuzzyMaxDistance
		},
	}
)

var (
	suggestionPasses = []suggestionPass{exactPass, wordPass, fuzzyPass}
	resolvePasses    = []suggestionPass{exactPass}
)

// Suggest binds every unbound field whose aliases match a header that no field
// uses yet. Matching runs exact, then whole-word, then fuzzy, so a close but
// inexact header never steals a column an exact alias would claim. Fields
// marked ExactOnly are bound on exact matches alone. It returns the bindings
// it added.
func (m *ColumnMapper) Suggest() map[string]int {
	return m.suggest(suggestionPasses)
}

func (m *ColumnMapper) suggest(passes []suggestionPass) map[string]int {
	headers := make([]headerForms, len(m.sheet.Headers))
	for i, header := range m.sheet.Headers {
		headers[i] = newHeaderForms(header)
	}

	used := make(map[int]bool, len(m.bindings))
	for _, column := range m.bindings {
		used[column] = true
	}

	added := make(map[string]int)
	for _, pass := range passes {
		for _, field := range m.catalog {
			if _, bound := m.bindings[field.Key]; bound {
				continue
			}
			if field.ExactOnly && !pass.exact {
				continue
			}
			if column, ok := matchColumn(headers, used, field, pass); ok {
				m.bindings[field.Key] = column
				used[column] = true
				added[field.Key] = column
			}
		}
	}
	return added
}

func matchColumn(headers []headerForms, used map[int]bool, field FieldDefinition, pass suggestionPass) (int, bool) {
	candidates := append([]string{field.Key, field.Label}, field.Aliases...)
	for _, candidate := range candidates {
		alias := newHeaderForms(candidate)
		if alias.compact == "" {
			continue
		}
		for column, header := range headers {
			if used[column] || header.compact == "" {
				continue
			}
			if pass.matches(header, alias) {
				return column, true
			}
		}
	}
	return Unmapped, false
}

// ResolveHeaderColumns binds fields whose aliases equal a header and confirms
// the result. It is the structured path's default when no operator mapping is
// supplied. Nobody reviews these bindings, so only exact alias matches count;
// close headers are left to the suggestions of the map command and the
// preview endpoint. It fails like Confirm when a required field has no
// matching header.
func ResolveHeaderColumns(catalog []FieldDefinition, sheet *Sheet) (ColumnMap, error) {
	mapper := NewColumnMapper(catalog, sheet)
	mapper.suggest(resolvePasses)
	return mapper.Confirm()
}
