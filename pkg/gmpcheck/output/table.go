package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// WriteTable prints verdicts as an aligned text table followed by a summary line.
func WriteTable(w io.Writer, r *models.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\t%s\t%s\t%s\t%s\n", ExportHeader[0], ExportHeader[1], ExportHeader[2], ExportHeader[3])
	for i, v := range r.Verdicts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, v.Product, v.Manufacturer, v.Status, v.Detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := r.Summary
	_, err := fmt.Fprintf(w, "\nchecked %d: %d OK, %d expired, %d not found\n", s.Processed, s.OK, s.Expired, s.NotFound)
	return err
}
