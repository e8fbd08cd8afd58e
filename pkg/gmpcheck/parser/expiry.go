package parser

import (
	"regexp"
	"time"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// NoDatePolicy decides the status of validity text that holds neither a date
// nor an expiry marker.
type NoDatePolicy string

const (
	// NoDateUnknown reports such text as StatusUnknown.
	NoDateUnknown NoDatePolicy = "unknown"
	// NoDateActive reads such text as an active certificate without a date.
	NoDateActive NoDatePolicy = "active"
)

// Valid reports whether p is a known policy.
func (p NoDatePolicy) Valid() bool {
	return p == NoDateUnknown || p == NoDateActive
}

// DateLayout is the day-first layout used in certificate registries and reports.
const DateLayout = "02.01.2006"

var expiredMarkers = []string{"истек", "истёк", "expired"}

var (
	dottedDate = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)
	isoDate    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// ParseExpiry reads a validity cell. A blank cell is StatusNoData. An expiry
// marker anywhere wins over any date. Otherwise the first DD.MM.YYYY date (or,
// failing that, YYYY-MM-DD date) is compared with now: strictly later is
// active, anything else expired. Text with no usable date follows policy.
func ParseExpiry(cell string, now time.Time, policy NoDatePolicy) (models.CertificationStatus, *time.Time) {
	if IsBlank(cell) {
		return models.StatusNoData, nil
	}

	text := FoldText(cell)
	if containsAny(text, expiredMarkers) {
		return models.StatusExpired, nil
	}

	if d, ok := findDate(text, now.Location()); ok {
		if d.After(now) {
			return models.StatusActive, &d
		}
		return models.StatusExpired, &d
	}

	if policy == NoDateActive {
		return models.StatusActive, nil
	}
	return models.StatusUnknown, nil
}

func findDate(text string, loc *time.Location) (time.Time, bool) {
	if m := dottedDate.FindString(text); m != "" {
		if d, err := time.ParseInLocation(DateLayout, m, loc); err == nil {
			return d, true
		}
	}
	if m := isoDate.FindString(text); m != "" {
		if d, err := time.ParseInLocation("2006-01-02", m, loc); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
