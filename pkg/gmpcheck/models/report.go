package models

// FileRole is the role a table plays in a cross-check run.
type FileRole string

const (
	RoleTarget   FileRole = "target"
	RoleDatabase FileRole = "database"
)

// FileSummary describes how one input file was interpreted.
type FileSummary struct {
	// File is the file name (no path).
	File string `json:"file"`
	// Role is the role the file played.
	Role FileRole `json:"role"`
	// Source is the encoding and delimiter, or the sheet name, the grid was read with.
	Source string `json:"source"`
	// HeaderRow is the raw row index of the header, -1 in blind mode.
	HeaderRow int `json:"header_row"`
	// BlindMode is true when no header row was found.
	BlindMode bool `json:"blind_mode"`
	// Labels lists the column labels after repair.
	Labels []string `json:"labels"`
	// Columns maps column role names to the resolved label.
	Columns map[string]string `json:"columns"`
	// Rows is the number of data rows.
	Rows int `json:"rows"`
}

// IndexStats describes the lookup index built from the database.
type IndexStats struct {
	// Records is the number of lookup records.
	Records int `json:"records"`
	// Rows is the number of database rows that produced at least one record.
	Rows int `json:"rows"`
	// EmptyRows is the number of rows whose products cell held no usable name.
	EmptyRows int `json:"empty_rows"`
	// DroppedRows is the number of rows skipped by row-level fault isolation.
	DroppedRows int `json:"dropped_rows"`
}

// Summary counts verdicts by status.
type Summary struct {
	Processed int `json:"processed"`
	OK        int `json:"ok"`
	Expired   int `json:"expired"`
	NotFound  int `json:"not_found"`
}

// Report is the full result of one cross-check run.
type Report struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`
	// Target describes the target list.
	Target FileSummary `json:"target"`
	// Database describes the certificate database.
	Database FileSummary `json:"database"`
	// Index describes the lookup index.
	Index IndexStats `json:"index"`
	// Verdicts holds one verdict per target row, in target order.
	Verdicts []MatchVerdict `json:"verdicts"`
	// Summary counts verdicts by status.
	Summary Summary `json:"summary"`
	// Warnings lists degradations the operator should see.
	Warnings []string `json:"warnings,omitempty"`
}

// Degraded reports whether the run completed with warnings.
func (r *Report) Degraded() bool {
	return len(r.Warnings) > 0
}
