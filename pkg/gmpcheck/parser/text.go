// Package parser turns loosely structured spreadsheets into labeled tables
// and normalizes the free-text cells found in them.
package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FoldText trims s, composes it to NFC and lower-cases it.
// All keyword and name comparisons are done on folded text.
func FoldText(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// IsBlank reports whether a cell holds no value.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// containsAny reports whether folded text contains any of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// rowText joins the folded values of a row into one search string.
func rowText(row []string) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if IsBlank(cell) {
			continue
		}
		parts = append(parts, FoldText(cell))
	}
	return strings.Join(parts, " ")
}
