package parser

import (
	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

// ColumnRole is a semantic column the pipeline needs from a table.
type ColumnRole int

const (
	ProductName ColumnRole = iota
	Manufacturer
	CertifiedProductsList
	ExpiryDate
)

var columnRoleNames = map[ColumnRole]string{
	ProductName:           "product_name",
	Manufacturer:          "manufacturer",
	CertifiedProductsList: "certified_products",
	ExpiryDate:            "expiry_date",
}

func (r ColumnRole) String() string {
	if name, ok := columnRoleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Fallback is the positional column used when no label matches.
type Fallback int

const (
	FallbackNone Fallback = iota
	FallbackFirst
	FallbackSecond
	FallbackLast
)

// ColumnSpec declares how a column role is found in one kind of table.
type ColumnSpec struct {
	Role     ColumnRole
	Keywords []string
	Fallback Fallback
	// Required roles abort the run when they cannot be resolved.
	Required bool
}

var targetColumns = map[ColumnRole]ColumnSpec{
	ProductName: {
		Role:     ProductName,
		Keywords: []string{"торговое", "наименование", "препарат"},
		Fallback: FallbackFirst,
		Required: true,
	},
	Manufacturer: {
		Role:     Manufacturer,
		Keywords: []string{"производител", "фирма", "держатель"},
		Fallback: FallbackSecond,
	},
}

var databaseColumns = map[ColumnRole]ColumnSpec{
	CertifiedProductsList: {
		Role:     CertifiedProductsList,
		Keywords: []string{"перечень", "продукция"},
		Fallback: FallbackLast,
		Required: true,
	},
	Manufacturer: {
		Role:     Manufacturer,
		Keywords: []string{"производител", "фирма"},
		Fallback: FallbackSecond,
	},
	ExpiryDate: {
		Role:     ExpiryDate,
		Keywords: []string{"срок", "дата"},
		Fallback: FallbackNone,
	},
}

// ColumnSpecFor returns the declared spec of a column role for a file role.
// The second result is false when that table kind has no such column.
func ColumnSpecFor(file models.FileRole, role ColumnRole) (ColumnSpec, bool) {
	var specs map[ColumnRole]ColumnSpec
	switch file {
	case models.RoleTarget:
		specs = targetColumns
	case models.RoleDatabase:
		specs = databaseColumns
	}
	spec, ok := specs[role]
	return spec, ok
}

// FindColumn returns the first label, in declared order, whose folded text
// contains any keyword.
func FindColumn(t *models.StructuredTable, keywords []string) (string, bool) {
	folded := make([]string, len(keywords))
	for i, k := range keywords {
		folded[i] = FoldText(k)
	}
	for _, label := range t.Labels {
		if containsAny(FoldText(label), folded) {
			return label, true
		}
	}
	return "", false
}

// ResolveColumn finds the column for spec by keyword, then by its positional fallback.
func ResolveColumn(t *models.StructuredTable, spec ColumnSpec) (string, bool) {
	if label, ok := FindColumn(t, spec.Keywords); ok {
		return label, true
	}

	n := len(t.Labels)
	switch spec.Fallback {
	case FallbackFirst:
		if n > 0 {
			return t.Labels[0], true
		}
	case FallbackSecond:
		if n > 1 {
			return t.Labels[1], true
		}
	case FallbackLast:
		if n > 0 {
			return t.Labels[n-1], true
		}
	}
	return "", false
}
