package importer

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// MappingFile is the on-disk form of an operator's column bindings.
type MappingFile struct {
	Source  string         `yaml:"source,omitempty"`
	Headers []string       `yaml:"headers,omitempty"`
	Columns map[string]int `yaml:"columns"`
}

// NewMappingFile captures the current bindings of mapper.
func NewMappingFile(source string, mapper *ColumnMapper) MappingFile {
	return MappingFile{
		Source:  source,
		Headers: append([]string(nil), mapper.Headers()...),
		Columns: mapper.Bindings(),
	}
}

// Apply copies the stored bindings onto mapper.
func (f MappingFile) Apply(mapper *ColumnMapper) {
	keys := make([]string, 0, len(f.Columns))
	for key := range f.Columns {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		mapper.SetBinding(key, f.Columns[key])
	}
}

func SaveMapping(path string, mapping MappingFile) error {
	content, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write mapping file %s: %w", path, err)
	}
	return nil
}

func LoadMapping(path string) (MappingFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return MappingFile{}, fmt.Errorf("read mapping file %s: %w", path, err)
	}

	var mapping MappingFile
	if err := yaml.Unmarshal(content, &mapping); err != nil {
		return MappingFile{}, fmt.Errorf("decode mapping file %s: %w", path, err)
	}
	for key := range mapping.Columns {
		if !IsCatalogKey(key) {
			return MappingFile{}, fmt.Errorf("mapping file %s: unknown field %q", path, key)
		}
	}
	return mapping, nil
}
