package importer

import (
	"fmt"
	"strings"
)

// ParseError reports a file that could not be read as a spreadsheet.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse spreadsheet %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErrorf(path, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Err: fmt.Errorf(format, args...)}
}

// StoreError reports a failure at the employee store boundary. Nothing from the
// batch is considered imported when it is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("employee store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MappingIncompleteError is returned by ColumnMapper.Confirm while required
// fields are still unbound.
type MappingIncompleteError struct {
	Missing []FieldDefinition
}

func (e *MappingIncompleteError) Error() string {
	labels := make([]string, 0, len(e.Missing))
	for _, field := range e.Missing {
		labels = append(labels, field.Label)
	}
	return fmt.Sprintf("column mapping incomplete: missing required fields: %s", strings.Join(labels, ", "))
}
