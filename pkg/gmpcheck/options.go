// Package gmpcheck cross-references a target list of products with a GMP
// certificate database and reports, per product, whether a valid certificate exists.
package gmpcheck

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

// RoleMode tells how input files are assigned to roles.
type RoleMode string

const (
	// RolesPinned treats the first input as the target list and the second as the database.
	RolesPinned RoleMode = "pinned"
	// RolesAuto lets the role classifier decide from the column labels.
	RolesAuto RoleMode = "auto"
)

// Options configures a cross-check run.
type Options struct {
	// Roles specifies how inputs are assigned to roles (pinned, auto).
	Roles RoleMode
	// NoDatePolicy decides validity text with neither a date nor an expiry marker.
	NoDatePolicy parser.NoDatePolicy
	// HeaderScanRows limits the header search. Zero means parser.DefaultHeaderScanRows.
	HeaderScanRows int
	// Workers is the number of goroutines matching target rows. Values below 2 match sequentially.
	Workers int
	// Now returns the reference time for expiry checks. If nil, time.Now is used.
	Now func() time.Time
	// Logger receives pipeline events. If nil, logrus.StandardLogger() is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default cross-check options.
func DefaultOptions() Options {
	return Options{
		Roles:          RolesPinned,
		NoDatePolicy:   parser.NoDateUnknown,
		HeaderScanRows: parser.DefaultHeaderScanRows,
		Workers:        1,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o Options) noDatePolicy() parser.NoDatePolicy {
	if o.NoDatePolicy.Valid() {
		return o.NoDatePolicy
	}
	return parser.NoDateUnknown
}
