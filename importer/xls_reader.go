package importer

import (
	"github.com/extrame/xls"
)

// maxXLSRows bounds the legacy reader; xls.ReadAllCells needs an explicit cap.
const maxXLSRows = 100000

// XLSReader reads legacy binary .xls workbooks. Only the first sheet is used.
type XLSReader struct{}

func (r *XLSReader) Read(path string) (*Sheet, error) {
	workbook, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if workbook.NumSheets() == 0 {
		return nil, parseErrorf(path, "workbook has no sheets")
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil || sheet.MaxRow == 0 && sheet.Row(0) == nil {
		return nil, parseErrorf(path, "first sheet is empty")
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow) && i < maxXLSRows; i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for col := row.FirstCol(); col < row.LastCol(); col++ {
			for len(cells) < col {
				cells = append(cells, "")
			}
			cells = append(cells, row.Col(col))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, parseErrorf(path, "first sheet is empty")
	}

	return newSheet(rows), nil
}
