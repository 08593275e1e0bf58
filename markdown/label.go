package markdown

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldLabel = cases.Fold()

// normalizeLabel implements the "Label... Equality is structural on
// normalized inlines" rule: Unicode-normalize, case-fold, and collapse
// internal whitespace runs to a single space, so "[My Link]" and
// "[my  link]" address the same key table entry.
func normalizeLabel(s string) string {
	s = norm.NFC.String(s)
	s = foldLabel.String(s)
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
