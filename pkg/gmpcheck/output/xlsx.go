package output

import (
	"io"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet holding exported verdicts.
const SheetName = "GMP"

// WriteXLSX writes verdicts as a workbook, one row per verdict, filled with
// the status color.
func WriteXLSX(w io.Writer, verdicts []models.MatchVerdict) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	header := make([]interface{}, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, headerStyle); err != nil {
		return err
	}

	styles := make(map[string]int)
	for i, v := range verdicts {
		rowNum := i + 2
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := exportRow(v)
		values := make([]interface{}, len(row))
		for j, s := range row {
			values[j] = s
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}

		color := v.Status.Color()
		style, ok := styles[color]
		if !ok {
			style, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			})
			if err != nil {
				return err
			}
			styles[color] = style
		}
		if err := f.SetRowStyle(SheetName, rowNum, rowNum, style); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", "D", 24); err != nil {
		return err
	}
	return f.Write(w)
}
