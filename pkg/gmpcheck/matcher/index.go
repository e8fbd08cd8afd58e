// Package matcher builds the lookup index from a certificate database and
// resolves a verdict for every product of a target list.
package matcher

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

var errMissingCell = errors.New("missing cell")

// RowError is a fault in a single database row. The row is dropped from the
// index and the build continues.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("database row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Columns holds the resolved database column labels. Empty means unresolved.
type Columns struct {
	Manufacturer string
	Products     string
	Expiry       string
}

// IndexOptions configures index construction.
type IndexOptions struct {
	Now          time.Time
	NoDatePolicy parser.NoDatePolicy
	Logger       logrus.FieldLogger
}

// BuildIndex explodes every database row into one lookup record per drug name.
// Records keep row-major, then name-major order.
func BuildIndex(t *models.StructuredTable, cols Columns, opts IndexOptions) (*models.LookupIndex, models.IndexStats) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	ix := &models.LookupIndex{}
	var stats models.IndexStats
	for r := range t.Rows {
		records, err := indexRow(t, r, cols, opts)
		if err != nil {
			stats.DroppedRows++
			log.WithError(err).WithField("row", r).Warn("dropping database row")
			continue
		}
		if len(records) == 0 {
			stats.EmptyRows++
			continue
		}
		stats.Rows++
		ix.Records = append(ix.Records, records...)
	}
	stats.Records = ix.Len()

	log.WithFields(logrus.Fields{
		"records":      stats.Records,
		"rows":         stats.Rows,
		"empty_rows":   stats.EmptyRows,
		"dropped_rows": stats.DroppedRows,
	}).Info("lookup index built")
	return ix, stats
}

// indexRow normalizes one row. Any failure, including a panic, becomes a RowError.
func indexRow(t *models.StructuredTable, r int, cols Columns, opts IndexOptions) (records []models.LookupRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			records = nil
			err = &RowError{Row: r, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	expiryCell := ""
	if cols.Expiry != "" {
		cell, ok := t.Cell(r, cols.Expiry)
		if !ok {
			return nil, &RowError{Row: r, Err: fmt.Errorf("%w: %s", errMissingCell, cols.Expiry)}
		}
		expiryCell = cell
	}
	status, expiry := parser.ParseExpiry(expiryCell, opts.Now, opts.NoDatePolicy)

	productsCell, ok := t.Cell(r, cols.Products)
	if !ok {
		return nil, &RowError{Row: r, Err: fmt.Errorf("%w: %s", errMissingCell, cols.Products)}
	}

	manufacturer := ""
	if cols.Manufacturer != "" {
		cell, ok := t.Cell(r, cols.Manufacturer)
		if !ok {
			return nil, &RowError{Row: r, Err: fmt.Errorf("%w: %s", errMissingCell, cols.Manufacturer)}
		}
		manufacturer = parser.FoldText(cell)
	}

	for _, name := range parser.SplitNames(productsCell) {
		records = append(records, models.LookupRecord{
			Name:         name,
			Manufacturer: manufacturer,
			Status:       status,
			Expiry:       expiry,
			Row:          r,
		})
	}
	return records, nil
}
