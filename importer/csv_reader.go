package importer

import (
	"encoding/csv"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type CSVReader struct {
	// Comma overrides the field delimiter; zero means ','.
	Comma rune
}

func (r *CSVReader) Read(path string) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(file, decoder))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if r.Comma != 0 {
		reader.Comma = r.Comma
	}

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, parseErrorf(path, "csv file is empty")
	}
	if err != nil {
		return nil, parseErrorf(path, "read csv header: %w", err)
	}

	sheet := &Sheet{Headers: headers, Rows: make([]PositionalRow, 0, 128)}
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErrorf(path, "read csv row %d: %w", rowNumber+1, err)
		}
		rowNumber++
		sheet.appendRow(row, rowNumber)
	}

	return sheet, nil
}
