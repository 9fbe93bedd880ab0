package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a display name for comparison: NFKC, case folded,
// inner whitespace collapsed to single spaces and trimmed.
func NormalizeName(name string) string {
	n := norm.NFKC.String(name)
	n = cases.Fold().String(n)
	return strings.Join(strings.Fields(n), " ")
}
