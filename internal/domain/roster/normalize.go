package roster

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	noiseChars    = regexp.MustCompile(`[*#\-_.:：]`)
)

// NormalizeHeader folds an arbitrary header string into its comparison
// form: NFKC compatibility folding so full-width and half-width variants
// compare equal, lowercasing, whitespace runs (including line breaks)
// collapsed to single spaces, and noise punctuation stripped. It never
// fails; empty input normalizes to "".
func NormalizeHeader(header string) string {
	if header == "" {
		return ""
	}
	h := norm.NFKC.String(header)
	h = strings.ToLower(h)
	h = whitespaceRun.ReplaceAllString(h, " ")
	h = noiseChars.ReplaceAllString(h, " ")
	h = whitespaceRun.ReplaceAllString(h, " ")
	return strings.TrimSpace(h)
}
