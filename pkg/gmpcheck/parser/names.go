package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinNameLength is the shortest fragment, in runes, kept as a drug name.
const MinNameLength = 3

var (
	numberedParen = regexp.MustCompile(`(^|\s)\d{1,3}\)`)
	numberedDot   = regexp.MustCompile(`(^|\s)\d{1,3}\.(\s|$|\p{L})`)
	lineBreaks    = regexp.MustCompile(`\r\n|\r|\n`)
)

// SplitNames splits a products cell into normalized drug names.
// Newlines and list numbering ("1)", "2. ", "3.Name") become semicolons; commas only
// separate names when the cell has no semicolon at all.
func SplitNames(cell string) []string {
	if IsBlank(cell) {
		return nil
	}

	s := numberedParen.ReplaceAllString(cell, "$1;")
	s = numberedDot.ReplaceAllString(s, "$1;$2")
	s = lineBreaks.ReplaceAllString(s, ";")
	if !strings.Contains(s, ";") && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ",", ";")
	}

	var names []string
	for _, part := range strings.Split(s, ";") {
		name := FoldText(part)
		if utf8.RuneCountInString(name) < MinNameLength {
			continue
		}
		names = append(names, name)
	}
	return names
}
