// Package identifier validates DOI-shaped method identifiers against an
// external bibliographic source and checks that the retrieved work title
// overlaps the method name it is cited for.
package identifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// titleStopWords are subtracted from both token sets before computing
// title overlap.
var titleStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "framework": {}, "criteria": {},
}

var wordRe = regexp.MustCompile(`\b\w+\b`)

// MetadataSource resolves a DOI to bibliographic metadata. Implemented by
// fetch.CrossRefClient.
type MetadataSource interface {
	WorkTitle(ctx context.Context, doi string) (string, error)
}

// CheckResult is the outcome of validating one identifier. Constructed once
// per call; the underlying metadata lookup is memoized per DOI for the life
// of the validator.
type CheckResult struct {
	// Valid is false only when a DOI lookup fails; unvalidatable identifier
	// shapes are accepted optimistically.
	Valid bool

	// TitleChecked reports whether a title-overlap comparison was performed.
	TitleChecked bool

	// TitleOverlap is meaningful only when TitleChecked is true.
	TitleOverlap bool

	// RetrievedTitle is the work title returned by the metadata source.
	RetrievedTitle string

	// Error carries a diagnostic or advisory message; it does not imply
	// Valid is false.
	Error string
}

// Validator classifies identifiers and validates DOI-shaped ones against a
// metadata source. Safe for concurrent use; concurrent validations of the
// same DOI perform at most one external lookup.
type Validator struct {
	source MetadataSource

	mu    sync.Mutex
	cache map[string]lookupResult
	group singleflight.Group
}

type lookupResult struct {
	title string
	err   error
}

// NewValidator returns a Validator backed by the given metadata source.
func NewValidator(source MetadataSource) *Validator {
	return &Validator{
		source: source,
		cache:  make(map[string]lookupResult),
	}
}

// Validate checks an identifier cited for methodName.
//
// An empty identifier or the literal "null" is accepted without any lookup:
// absence of an identifier is not an error. Identifiers with a "DOI:" prefix
// or a bare "10." prefix are treated as DOIs and resolved through the
// metadata source; on success the work title is compared against methodName.
// Any other shape is accepted optimistically with an advisory message, since
// no external source exists to validate it.
func (v *Validator) Validate(ctx context.Context, methodName, id string) CheckResult {
	trimmed := strings.TrimSpace(id)

	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return CheckResult{Valid: true}
	}

	if doi, ok := asDOI(trimmed); ok {
		title, err := v.lookupTitle(ctx, doi)
		if err != nil {
			return CheckResult{
				Valid: false,
				Error: fmt.Sprintf("DOI lookup failed for %s: %v", doi, err),
			}
		}
		return CheckResult{
			Valid:          true,
			TitleChecked:   true,
			TitleOverlap:   titleOverlap(methodName, title),
			RetrievedTitle: title,
		}
	}

	return CheckResult{
		Valid: true,
		Error: fmt.Sprintf("identifier %q not validated: no external source for this scheme", trimmed),
	}
}

// asDOI reports whether id is DOI-shaped and returns the bare DOI.
func asDOI(id string) (string, bool) {
	if strings.HasPrefix(id, "DOI:") {
		return strings.TrimSpace(id[len("DOI:"):]), true
	}
	if strings.HasPrefix(id, "10.") {
		return id, true
	}
	return "", false
}

// lookupTitle resolves a DOI through the metadata source, memoizing both
// successes and failures so repeated identifiers in one run never trigger
// repeated external calls.
func (v *Validator) lookupTitle(ctx context.Context, doi string) (string, error) {
	v.mu.Lock()
	if cached, ok := v.cache[doi]; ok {
		v.mu.Unlock()
		return cached.title, cached.err
	}
	v.mu.Unlock()

	res, err, _ := v.group.Do(doi, func() (interface{}, error) {
		title, err := v.source.WorkTitle(ctx, doi)

		v.mu.Lock()
		v.cache[doi] = lookupResult{title: title, err: err}
		v.mu.Unlock()

		return title, err
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// titleOverlap compares method name and work title as stop-word-free word
// sets. Overlap holds when strictly more than half of the method-name tokens
// appear in the title.
func titleOverlap(methodName, title string) bool {
	methodTokens := titleTokens(methodName)
	if len(methodTokens) == 0 {
		return false
	}
	found := titleTokens(title)

	matched := 0
	for tok := range methodTokens {
		if _, ok := found[tok]; ok {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(methodTokens))
	return ratio > 0.5
}

func titleTokens(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if _, stop := titleStopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}
