package models

import "time"

// VerdictStatus is the outcome of checking one target product.
type VerdictStatus string

const (
	VerdictOK       VerdictStatus = "OK"
	VerdictExpired  VerdictStatus = "EXPIRED"
	VerdictNotFound VerdictStatus = "NOT FOUND"
)

// Display colors per verdict status.
const (
	ColorGreen  = "#D1FAE5"
	ColorYellow = "#FEF3C7"
	ColorRed    = "#FECACA"
)

// Color returns the display color hint for the status.
func (s VerdictStatus) Color() string {
	switch s {
	case VerdictOK:
		return ColorGreen
	case VerdictExpired:
		return ColorYellow
	default:
		return ColorRed
	}
}

// MatchVerdict is the result for one target list row.
type MatchVerdict struct {
	// Product is the product name as given in the target list.
	Product string `json:"product"`
	// Manufacturer is the manufacturer as given in the target list.
	Manufacturer string `json:"manufacturer"`
	// Status is the verdict.
	Status VerdictStatus `json:"status"`
	// Detail is a human-readable explanation.
	Detail string `json:"detail"`
	// Date is the expiry date of the matched certificate, if any.
	Date *time.Time `json:"date,omitempty"`
	// Key is the search key derived from the product name.
	Key string `json:"key,omitempty"`
	// Candidates is the number of lookup records matching the key.
	Candidates int `json:"candidates"`
	// MatchedName is the drug name of the chosen record for OK verdicts.
	MatchedName string `json:"matched_name,omitempty"`
	// MatchedManufacturer is the manufacturer of the chosen record for OK verdicts.
	MatchedManufacturer string `json:"matched_manufacturer,omitempty"`
	// Color is the display color hint derived from Status.
	Color string `json:"color"`
}
