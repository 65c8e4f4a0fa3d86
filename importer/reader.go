package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Strategy selects how a source file is turned into rows.
type Strategy string

const (
	// StrategyStructured reads the first sheet of a workbook, first row as headers.
	StrategyStructured Strategy = "structured"
	// StrategyLegacy scans pre-extracted tab-delimited text for status-tagged lines.
	StrategyLegacy Strategy = "legacy"
)

func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(value))) {
	case "", StrategyStructured:
		return StrategyStructured, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	default:
		return "", fmt.Errorf("unsupported import strategy %q (supported: structured|legacy)", value)
	}
}

// Sheet is the header row and the data rows of one source file. Every row is
// padded to at least len(Headers) cells.
type Sheet struct {
	Headers    []string
	Rows       []PositionalRow
	rowNumbers []int
}

// RowNumber returns the 1-based source line of data row i.
func (s *Sheet) RowNumber(i int) int {
	if i >= 0 && i < len(s.rowNumbers) {
		return s.rowNumbers[i]
	}
	return i + 2
}

func (s *Sheet) appendRow(cells []string, rowNumber int) {
	width := len(s.Headers)
	if len(cells) > width {
		width = len(cells)
	}
	row := make(PositionalRow, width)
	copy(row, cells)
	s.Rows = append(s.Rows, row)
	s.rowNumbers = append(s.rowNumbers, rowNumber)
}

// newSheet treats the first raw row as headers and the rest as data.
func newSheet(raw [][]string) *Sheet {
	sheet := &Sheet{Headers: append([]string(nil), raw[0]...)}
	sheet.Rows = make([]PositionalRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		sheet.appendRow(cells, i+2)
	}
	return sheet
}

type Reader interface {
	Read(path string) (*Sheet, error)
}

// ReaderFor returns the reader for a strategy and source format. An empty
// format is inferred from the file extension of path.
func ReaderFor(strategy Strategy, format, path string, legacy LegacyOptions) (Reader, error) {
	if strategy == StrategyLegacy {
		return &LegacyReader{Options: legacy}, nil
	}

	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	switch sourceFormat {
	case "csv":
		return &CSVReader{}, nil
	case "xls":
		return &XLSReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	case "text", "txt", "tsv":
		return &LegacyReader{Options: legacy}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return strings.ToLower(strings.TrimSpace(format)), nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xls":
		return "xls", nil
	case "xlsx", "xlsm":
		return "excel", nil
	case "txt", "tsv":
		return "text", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
