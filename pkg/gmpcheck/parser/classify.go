package parser

import (
	"strings"

	"github.com/ukaji3/gmpcheck-go/pkg/gmpcheck/models"
)

type weightedKeyword struct {
	word   string
	weight int
}

// Role keywords are disjoint. "производител" is left out on purpose since it
// shows up in both kinds of table.
var targetRoleKeywords = []weightedKeyword{
	{"торговое", 3},
	{"препарат", 2},
	{"держатель", 2},
	{"наименование", 1},
}

var databaseRoleKeywords = []weightedKeyword{
	{"перечень", 3},
	{"продукци", 2},
	{"сертификат", 2},
	{"срок", 2},
	{"gmp", 1},
	{"площадк", 1},
	{"дата", 1},
}

// RoleScores scores the column labels of t against both role keyword sets.
func RoleScores(t *models.StructuredTable) (target, database int) {
	folded := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		folded[i] = FoldText(l)
	}
	text := strings.Join(folded, " ")

	for _, k := range targetRoleKeywords {
		if strings.Contains(text, k.word) {
			target += k.weight
		}
	}
	for _, k := range databaseRoleKeywords {
		if strings.Contains(text, k.word) {
			database += k.weight
		}
	}
	return target, database
}

// ClassifyPair decides which of two tables is the certificate database.
// The table leaning more towards the database keywords wins; on a tie the
// table with more rows is the database. With equal rows a stays the target.
func ClassifyPair(a, b *models.StructuredTable) (roleA, roleB models.FileRole) {
	at, ad := RoleScores(a)
	bt, bd := RoleScores(b)
	leanA, leanB := ad-at, bd-bt

	switch {
	case leanA > leanB:
		return models.RoleDatabase, models.RoleTarget
	case leanB > leanA:
		return models.RoleTarget, models.RoleDatabase
	case a.Len() > b.Len():
		return models.RoleDatabase, models.RoleTarget
	default:
		return models.RoleTarget, models.RoleDatabase
	}
}
