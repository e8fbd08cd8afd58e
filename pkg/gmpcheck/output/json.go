// Package output renders cross-check results for people and programs.
package output

import (
	"encoding/json"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// ToJSON serializes a full report.
func ToJSON(r *models.Report, pretty bool) ([]byte, error) {
	return marshal(r, pretty)
}

// VerdictsToJSON serializes only the verdict list.
func VerdictsToJSON(verdicts []models.MatchVerdict, pretty bool) ([]byte, error) {
	return marshal(verdicts, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
