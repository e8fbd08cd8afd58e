package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// MaxHeaderScanRows caps the number of leading rows searched for a header.
const MaxHeaderScanRows = 50

// DefaultHeaderScanRows is how many leading rows are searched for a header.
const DefaultHeaderScanRows = MaxHeaderScanRows

// Header keywords per file role.
var (
	TargetHeaderKeywords   = []string{"торговое", "наименование", "препарат"}
	DatabaseHeaderKeywords = []string{"перечень", "производител", "срок"}
)

// HeaderKeywords returns the header keywords for a role. An empty role
// returns the union of both sets, used when roles are not yet known.
func HeaderKeywords(role models.FileRole) []string {
	switch role {
	case models.RoleTarget:
		return TargetHeaderKeywords
	case models.RoleDatabase:
		return DatabaseHeaderKeywords
	}
	all := make([]string, 0, len(TargetHeaderKeywords)+len(DatabaseHeaderKeywords))
	all = append(all, TargetHeaderKeywords...)
	return append(all, DatabaseHeaderKeywords...)
}

// FindHeaderRow returns the index of the first of the leading limit rows whose
// folded text contains any keyword, or -1. A limit <= 0 means
// DefaultHeaderScanRows; larger limits are capped at MaxHeaderScanRows.
func FindHeaderRow(t *models.RawTable, keywords []string, limit int) int {
	if limit <= 0 {
		limit = DefaultHeaderScanRows
	}
	if limit > MaxHeaderScanRows {
		limit = MaxHeaderScanRows
	}
	folded := make([]string, len(keywords))
	for i, k := range keywords {
		folded[i] = FoldText(k)
	}

	for i := 0; i < limit && i < t.Len(); i++ {
		if containsAny(rowText(t.Rows[i]), folded) {
			return i
		}
	}
	return -1
}

// Structure locates the header and builds a StructuredTable. When no header is
// found the whole grid is kept under positional labels (blind mode).
func Structure(t *models.RawTable, keywords []string, limit int) *models.StructuredTable {
	if idx := FindHeaderRow(t, keywords, limit); idx >= 0 {
		return PromoteHeader(t, idx)
	}
	return BlindTable(t)
}

// PromoteHeader turns row idx into column labels and keeps every row below
// it, blank ones included, so each row keeps its place.
func PromoteHeader(t *models.RawTable, idx int) *models.StructuredTable {
	return &models.StructuredTable{
		Labels:    RepairLabels(t.Rows[idx]),
		Rows:      t.Rows[idx+1:],
		HeaderRow: idx,
	}
}

// BlindTable labels the columns Col_0, Col_1, ... over the unmodified grid.
func BlindTable(t *models.RawTable) *models.StructuredTable {
	return &models.StructuredTable{
		Labels:    RepairLabels(make([]string, t.Cols)),
		Rows:      t.Rows,
		HeaderRow: -1,
	}
}

// RepairLabels makes header labels non-empty and unique. Empty labels become
// Col_<index>; repeated labels get a ".<n>" occurrence suffix.
func RepairLabels(raw []string) []string {
	labels := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, cell := range raw {
		label := strings.Join(strings.Fields(cell), " ")
		if label == "" {
			label = fmt.Sprintf("Col_%d", i)
		}
		candidate := label
		for n := seen[label]; ; n++ {
			if n > 0 {
				candidate = fmt.Sprintf("%s.%d", label, n)
			}
			if _, taken := seen[candidate]; !taken {
				seen[label] = n + 1
				break
			}
		}
		seen[candidate] = 1
		labels[i] = candidate
	}
	return labels
}
