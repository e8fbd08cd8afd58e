package models

import "time"

// CertificationStatus is the validity of a certificate as read from the database.
type CertificationStatus string

const (
	// StatusActive means the certificate is valid.
	StatusActive CertificationStatus = "active"
	// StatusExpired means the certificate is marked expired or its date has passed.
	StatusExpired CertificationStatus = "expired"
	// StatusUnknown means validity text is present but could not be interpreted.
	StatusUnknown CertificationStatus = "unknown"
	// StatusNoData means there was no validity cell at all.
	StatusNoData CertificationStatus = "no_data"
)

// LookupRecord is one drug name found in a certificate database row.
type LookupRecord struct {
	// Name is the normalized (case-folded, trimmed) drug name.
	Name string `json:"name"`
	// Manufacturer is the normalized manufacturer of the source row.
	Manufacturer string `json:"manufacturer"`
	// Status is the certification status of the source row.
	Status CertificationStatus `json:"status"`
	// Expiry is the certificate expiry date, nil when none was found.
	Expiry *time.Time `json:"expiry,omitempty"`
	// Row is the data row index in the database table the record came from.
	Row int `json:"row"`
}

// LookupIndex is the ordered collection of lookup records for one database.
// It is built once per run and only read afterwards.
type LookupIndex struct {
	Records []LookupRecord `json:"records"`
}

// Len returns the number of records.
func (ix *LookupIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.Records)
}
