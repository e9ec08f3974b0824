// Package textmatch implements the supporting-text matching engine: text
// normalization, word-set similarity scoring, and quotation lookup inside
// fetched publication bodies.
//
// The matching strategy is deliberately simple bag-of-words/substring work.
// Curators compare its output against the exact quotes they entered, so the
// scores must stay stable and explainable rather than clever.
package textmatch

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
)

// Normalize canonicalizes text for comparison: leading/trailing whitespace is
// stripped, internal whitespace runs (including newlines and tabs) collapse to
// a single space, curly quotes map to their straight ASCII equivalents, and
// the result is lowercased.
//
// Normalize is pure, total, and idempotent. Every similarity or substring
// computation in this package operates on normalized text; callers never
// compare raw strings.
func Normalize(text string) string {
	s := whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	s = quoteReplacer.Replace(s)
	return strings.ToLower(s)
}
