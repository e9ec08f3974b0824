package relevance

import (
	"strings"

	"github.com/fyrsmithlabs/annocheck/internal/textmatch"
)

const (
	// relevantThreshold is the keyword-match ratio at which a document counts
	// as relevant.
	relevantThreshold = 0.2

	// fullNameFloor is the minimum score granted when the exact disease name
	// appears in the document.
	fullNameFloor = 0.8
)

// Result is the relevance verdict for one document. A value object:
// constructed once, never mutated.
type Result struct {
	Relevant bool
	Score    float64
}

// Score computes keyword-overlap relevance of a document body against a
// keyword set.
//
// An empty keyword set returns (true, 1.0): with no disease-identifying
// information the check fails open rather than flagging documents it cannot
// judge. Otherwise each keyword is tested for substring containment in the
// normalized document, so multi-word keywords must appear contiguously. The
// score is the matched fraction, relevant at 20% or more. When the full
// disease name itself appears, the document is forced relevant and the score
// raised to at least 0.8 regardless of the token-level ratio.
func Score(documentText string, ks KeywordSet) Result {
	if ks.Empty() {
		return Result{Relevant: true, Score: 1.0}
	}

	normalized := textmatch.Normalize(documentText)

	matches := 0
	for term := range ks.terms {
		if strings.Contains(normalized, term) {
			matches++
		}
	}

	score := float64(matches) / float64(len(ks.terms))
	relevant := score >= relevantThreshold

	if ks.fullName != "" && strings.Contains(normalized, ks.fullName) {
		relevant = true
		if score < fullNameFloor {
			score = fullNameFloor
		}
	}

	return Result{Relevant: relevant, Score: score}
}
