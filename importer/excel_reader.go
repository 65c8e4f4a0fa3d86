package importer

import (
	"github.com/xuri/excelize/v2"
)

// ExcelReader reads .xlsx/.xlsm workbooks. Only the first sheet is used; cells
// are read unformatted so date cells arrive as serial day numbers.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (*Sheet, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, parseErrorf(path, "workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, parseErrorf(path, "read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, parseErrorf(path, "sheet %s is empty", sheetName)
	}

	return newSheet(rows), nil
}
