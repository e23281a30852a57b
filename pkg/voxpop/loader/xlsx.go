package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// readWorkbook reads one sheet of an Excel workbook; the first row is the
// header. Trailing empty cells are trimmed by excelize, so short rows are
// padded with nulls later rather than skipped.
//
// Cells are read raw rather than in their display format. Numeric cells
// styled as dates are rewritten as ISO dates so they parse regardless of
// the workbook's locale format.
func readWorkbook(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook has no sheets: %w", internalerr.ErrInvalidInput)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row: %w", sheet, internalerr.ErrInvalidInput)
	}

	dates := newDateCells(f, sheet)
	var data [][]string
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		// rows[0] is sheet row 1.
		for j, v := range row {
			if iso, ok := dates.convert(j+1, i+2, v); ok {
				row[j] = iso
			}
		}
		data = append(data, row)
	}
	return rows[0], data, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

// dateCells recognizes date-styled serial numbers. Style lookups are cached
// by style index.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	d := &dateCells{f: f, sheet: sheet, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// convert returns the ISO form of the cell at (col, row) when it holds a
// serial number under a date format. Whole days render as 2006-01-02,
// anything else as 2006-01-02 15:04:05.
func (d *dateCells) convert(col, row int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || serial < 0 {
		return "", false
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(idx) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02"), true
	}
	return t.Format("2006-01-02 15:04:05"), true
}

func (d *dateCells) isDateStyle(idx int) bool {
	if known, ok := d.styles[idx]; ok {
		return known
	}
	isDate := false
	if style, err := d.f.GetStyle(idx); err == nil && style != nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormat(*style.CustomNumFmt)
		default:
			isDate = isBuiltInDate(style.NumFmt)
		}
	}
	d.styles[idx] = isDate
	return isDate
}

// isBuiltInDate reports whether a built-in number format id shows a
// calendar date: the English date formats plus the East Asian locale ones.
func isBuiltInDate(id int) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom format code has a day or year
// token outside quoted literals and bracketed sections.
func isDateFormat(code string) bool {
	code = strings.ToLower(code)
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			bracket = true
		case c == ']':
			bracket = false
		case bracket:
		case c == 'y', c == 'd':
			return true
		}
	}
	return false
}
