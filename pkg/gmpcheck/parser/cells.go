package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateNumFmts are the built-in number format IDs that display a date.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// ExtractGrid reads every row of a sheet as plain text, without any header
// inference. Date cells are written as DD.MM.YYYY whatever their display
// format. Trailing empty rows and columns are dropped.
func ExtractGrid(f *excelize.File, sheetName string) ([][]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	dates := newDateCells(f)
	for r, row := range rows {
		for c, value := range row {
			if IsBlank(value) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if d, ok := dates.value(sheetName, cell); ok {
				row[c] = d
			}
		}
	}
	return trimGrid(rows), nil
}

// firstDataSheet returns the grid of the first sheet holding any data.
func firstDataSheet(f *excelize.File) (string, [][]string, error) {
	var firstErr error
	for _, sheetName := range f.GetSheetList() {
		grid, err := ExtractGrid(f, sheetName)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(grid) > 0 {
			return sheetName, grid, nil
		}
	}
	if firstErr != nil {
		return "", nil, firstErr
	}
	return "", nil, errNoData
}

// dateCells recognizes date-formatted cells, caching the verdict per style.
type dateCells struct {
	f        *excelize.File
	date1904 bool
	styles   map[int]bool
}

func newDateCells(f *excelize.File) *dateCells {
	d := &dateCells{f: f, styles: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// value returns the cell as DD.MM.YYYY when it holds a serial date under a
// date number format. Text stored in a date-formatted cell is left alone.
func (d *dateCells) value(sheetName, cell string) (string, bool) {
	styleID, err := d.f.GetCellStyle(sheetName, cell)
	if err != nil || styleID == 0 || !d.isDateStyle(styleID) {
		return "", false
	}

	raw, err := d.f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := d.styles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := d.f.GetStyle(styleID); err == nil {
		isDate = dateNumFmts[style.NumFmt]
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		}
	}
	d.styles[styleID] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format shows a day or a
// year. Quoted literals, escaped characters and bracketed sections such as
// colors or locales are ignored.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	return strings.ContainsAny(s, "dy")
}
