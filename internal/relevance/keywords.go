// Package relevance scores how strongly a publication body pertains to the
// disease being annotated, using keyword overlap derived from the disease
// name and its synonyms.
package relevance

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// stopWords are dropped during keyword extraction. They carry no
// disease-identifying signal on their own.
var stopWords = map[string]struct{}{
	"syndrome": {}, "disease": {}, "disorder": {},
	"the": {}, "of": {}, "and": {}, "or": {}, "a": {}, "an": {},
}

var separatorRe = regexp.MustCompile(`[,\s\-_]+`)

// KeywordSet is the de-duplicated set of lowercase terms identifying a
// disease: tokens of the disease name and every synonym, plus the full
// lowercased disease name as one untokenized term. Built once per validation
// run and immutable afterwards.
type KeywordSet struct {
	terms    map[string]struct{}
	fullName string
}

// BuildKeywords derives a KeywordSet from a disease name and externally
// supplied synonym strings. Name and synonyms are tokenized on commas,
// whitespace, hyphens and underscores; stop-words and tokens of two or fewer
// characters are dropped. An empty name with no synonyms yields the empty
// set, which scores every document as relevant.
func BuildKeywords(diseaseName string, synonyms []string) KeywordSet {
	ks := KeywordSet{terms: make(map[string]struct{})}

	if diseaseName != "" {
		ks.fullName = strings.ToLower(diseaseName)
		ks.addTokens(ks.fullName)
		ks.terms[ks.fullName] = struct{}{}
	}

	for _, syn := range synonyms {
		ks.addTokens(strings.ToLower(syn))
	}

	return ks
}

// FromTerms builds a KeywordSet from pre-extracted keyword strings, as
// supplied by interactive callers. Terms are lowercased and de-duplicated but
// not tokenized further, and no full-name override applies.
func FromTerms(terms []string) KeywordSet {
	ks := KeywordSet{terms: make(map[string]struct{})}
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t != "" {
			ks.terms[t] = struct{}{}
		}
	}
	return ks
}

func (ks KeywordSet) addTokens(lowered string) {
	for _, tok := range separatorRe.Split(lowered, -1) {
		if tok == "" || utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		ks.terms[tok] = struct{}{}
	}
}

// Empty reports whether the set holds no keywords.
func (ks KeywordSet) Empty() bool { return len(ks.terms) == 0 }

// Len returns the number of distinct keywords.
func (ks KeywordSet) Len() int { return len(ks.terms) }

// Terms returns the keywords in sorted order.
func (ks KeywordSet) Terms() []string {
	out := make([]string, 0, len(ks.terms))
	for t := range ks.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
