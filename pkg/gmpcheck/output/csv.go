package output

import (
	"encoding/csv"
	"io"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// ExportHeader is the column contract of every tabular export.
var ExportHeader = []string{"Product", "Manufacturer", "Status", "Detail"}

// utf8BOM lets spreadsheet programs detect UTF-8 and keep Cyrillic text intact.
const utf8BOM = "\xef\xbb\xbf"

// WriteCSV writes verdicts as comma-separated text with a header row.
func WriteCSV(w io.Writer, verdicts []models.MatchVerdict) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, v := range verdicts {
		if err := cw.Write(exportRow(v)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(v models.MatchVerdict) []string {
	return []string{v.Product, v.Manufacturer, string(v.Status), v.Detail}
}
