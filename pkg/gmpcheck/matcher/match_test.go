package matcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

func TestSearchKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Биокан DHPPi", "биокан"},
		{"  НОБИВАК Rabies", "нобивак"},
		{"Ду-Би (Du-Bi)", ""},
		{"5 мл. Ципрокс", "ципрокс"},
		{"Эн-рофлон", "рофлон"},
		{"Ab", ""},
		{"", ""},
		{"a-b.c,d(e)", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SearchKey(tt.name), "SearchKey(%q)", tt.name)
	}
}

func record(name string, status models.CertificationStatus, expiry *time.Time) models.LookupRecord {
	return models.LookupRecord{Name: name, Manufacturer: "msd", Status: status, Expiry: expiry}
}

func TestMatchPrecedence(t *testing.T) {
	expiry := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	ix := &models.LookupIndex{Records: []models.LookupRecord{
		record("нобивак rabies", models.StatusExpired, nil),
		record("нобивак dhppi", models.StatusActive, &expiry),
		record("нобивак lepto", models.StatusExpired, nil),
	}}

	v := Match(Target{Product: "Нобивак Rabies", Manufacturer: "MSD"}, ix)

	assert.Equal(t, models.VerdictOK, v.Status)
	assert.Equal(t, "нобивак dhppi", v.MatchedName)
	assert.Equal(t, 3, v.Candidates)
	assert.Equal(t, "GMP до 01.01.2099", v.Detail)
	require.NotNil(t, v.Date)
	assert.True(t, v.Date.Equal(expiry))
	assert.Equal(t, models.ColorGreen, v.Color)
	assert.Equal(t, "Нобивак Rabies", v.Product)
	assert.Equal(t, "MSD", v.Manufacturer)
}

func TestMatchFirstActiveWins(t *testing.T) {
	first := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	ix := &models.LookupIndex{Records: []models.LookupRecord{
		record("биокан a", models.StatusActive, &first),
		record("биокан b", models.StatusActive, &second),
	}}

	v := Match(Target{Product: "Биокан"}, ix)
	assert.Equal(t, "GMP до 01.01.2030", v.Detail)
}

func TestMatchVerdicts(t *testing.T) {
	ix := &models.LookupIndex{Records: []models.LookupRecord{
		record("ципрокс", models.StatusExpired, nil),
		record("энрофлон", models.StatusUnknown, nil),
		record("биокан", models.StatusNoData, nil),
		record("нобивак", models.StatusActive, nil),
	}}

	tests := []struct {
		product string
		status  models.VerdictStatus
		detail  string
	}{
		{"Ципрокс 10%", models.VerdictExpired, DetailExpired},
		{"Энрофлон", models.VerdictExpired, DetailExpired},
		{"Биокан", models.VerdictExpired, DetailExpired},
		{"Нобивак", models.VerdictOK, DetailActiveNoDate},
		{"Рабизин", models.VerdictNotFound, DetailNotFound},
		{"Ab", models.VerdictNotFound, DetailNotFound},
	}

	for _, tt := range tests {
		v := Match(Target{Product: tt.product}, ix)
		assert.Equal(t, tt.status, v.Status, tt.product)
		assert.Equal(t, tt.detail, v.Detail, tt.product)
		assert.Equal(t, tt.status.Color(), v.Color, tt.product)
	}
}

func TestMatchEmptyKeyIgnoresIndex(t *testing.T) {
	// Every record contains "ab", the key is still empty
	ix := &models.LookupIndex{Records: []models.LookupRecord{
		record("ab", models.StatusActive, nil),
		record("abc", models.StatusActive, nil),
	}}

	v := Match(Target{Product: "ab"}, ix)
	assert.Equal(t, models.VerdictNotFound, v.Status)
	assert.Equal(t, 0, v.Candidates)

	v = Match(Target{Product: "Биокан"}, nil)
	assert.Equal(t, models.VerdictNotFound, v.Status)
}

func TestMatchAllKeepsOrder(t *testing.T) {
	ix := &models.LookupIndex{Records: []models.LookupRecord{
		record("препарат 1", models.StatusActive, nil),
	}}

	targets := make([]Target, 0, 200)
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("Товар%d", i)
		if i%3 == 0 {
			name = "Препарат"
		}
		targets = append(targets, Target{Product: name})
	}

	sequential := MatchAll(targets, ix, 1)
	parallel := MatchAll(targets, ix, 8)

	require.Len(t, parallel, len(targets))
	assert.Equal(t, sequential, parallel)
	for i, v := range parallel {
		assert.Equal(t, targets[i].Product, v.Product)
	}
}

func TestSummarize(t *testing.T) {
	verdicts := []models.MatchVerdict{
		{Status: models.VerdictOK},
		{Status: models.VerdictOK},
		{Status: models.VerdictExpired},
		{Status: models.VerdictNotFound},
	}
	assert.Equal(t, models.Summary{Processed: 4, OK: 2, Expired: 1, NotFound: 1}, Summarize(verdicts))
}
