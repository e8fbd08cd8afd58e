package matcher

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/parser"
)

// Verdict details.
const (
	DetailNotFound     = "Сертификат не найден"
	DetailExpired      = "Сертификат истек"
	DetailActivePrefix = "GMP до "
	DetailActiveNoDate = "GMP активен (срок не указан)"
)

// MinKeyLength is the shortest token, in runes, usable as a search key.
const MinKeyLength = 3

var keySeparators = regexp.MustCompile(`[ \-().,]+`)

// Target is one row of the target list.
type Target struct {
	Product      string
	Manufacturer string
}

// SearchKey returns the first token of the folded name that is at least
// MinKeyLength runes long, or "" when none is.
func SearchKey(name string) string {
	for _, token := range keySeparators.Split(parser.FoldText(name), -1) {
		if utf8.RuneCountInString(token) >= MinKeyLength {
			return token
		}
	}
	return ""
}

// Match resolves the verdict for one target against the index: the first
// active candidate gives OK, candidates without an active one give EXPIRED,
// and no candidate (or no key) gives NOT FOUND.
func Match(target Target, ix *models.LookupIndex) models.MatchVerdict {
	v := models.MatchVerdict{
		Product:      target.Product,
		Manufacturer: target.Manufacturer,
		Key:          SearchKey(target.Product),
	}

	var best *models.LookupRecord
	if v.Key != "" && ix != nil {
		for i := range ix.Records {
			rec := &ix.Records[i]
			if !strings.Contains(rec.Name, v.Key) {
				continue
			}
			v.Candidates++
			if best == nil && rec.Status == models.StatusActive {
				best = rec
			}
		}
	}

	switch {
	case v.Candidates == 0:
		v.Status = models.VerdictNotFound
		v.Detail = DetailNotFound
	case best != nil:
		v.Status = models.VerdictOK
		v.Date = best.Expiry
		v.MatchedName = best.Name
		v.MatchedManufacturer = best.Manufacturer
		if best.Expiry != nil {
			v.Detail = DetailActivePrefix + best.Expiry.Format(parser.DateLayout)
		} else {
			v.Detail = DetailActiveNoDate
		}
	default:
		v.Status = models.VerdictExpired
		v.Detail = DetailExpired
	}
	v.Color = v.Status.Color()
	return v
}

// MatchAll matches every target, using up to workers goroutines over the
// read-only index. Verdicts come back in target order.
func MatchAll(targets []Target, ix *models.LookupIndex, workers int) []models.MatchVerdict {
	verdicts := make([]models.MatchVerdict, len(targets))
	if workers <= 1 || len(targets) < 2 {
		for i, t := range targets {
			verdicts[i] = Match(t, ix)
		}
		return verdicts
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t Target) {
			defer wg.Done()
			defer func() { <-sem }()
			verdicts[i] = Match(t, ix)
		}(i, t)
	}
	wg.Wait()
	return verdicts
}

// Summarize counts verdicts by status.
func Summarize(verdicts []models.MatchVerdict) models.Summary {
	s := models.Summary{Processed: len(verdicts)}
	for _, v := range verdicts {
		switch v.Status {
		case models.VerdictOK:
			s.OK++
		case models.VerdictExpired:
			s.Expired++
		default:
			s.NotFound++
		}
	}
	return s
}
