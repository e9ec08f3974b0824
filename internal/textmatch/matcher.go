package textmatch

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultThreshold is the sentence similarity required for a fuzzy match.
	DefaultThreshold = 0.8

	// suggestionFloor is the minimum similarity for a sentence to be offered
	// as an alternative quotation.
	suggestionFloor = 0.5

	// contextWindow is the number of characters of surrounding document text
	// included on each side of an exact match.
	contextWindow = 100

	// minSentenceLen drops trivially short sentence fragments from the fuzzy
	// scan.
	minSentenceLen = 10

	// maxSuggestions caps the alternative-match list on a not-found result.
	maxSuggestions = 3
)

var sentenceRe = regexp.MustCompile(`[.!?]+`)

// Suggestion is a candidate alternative to a quotation that was not found
// verbatim: a document sentence together with its similarity score.
type Suggestion struct {
	Score    float64
	Sentence string
}

// String renders the suggestion in the report form shown to curators.
func (s Suggestion) String() string {
	return fmt.Sprintf("Similarity %.2f: %s...", s.Score, truncate(s.Sentence, contextWindow))
}

// MatchResult is the outcome of matching one quotation against one document.
// It is a value object: constructed once, never mutated.
type MatchResult struct {
	// Found reports whether the quotation appears in the document, either
	// verbatim or as a sentence clearing the similarity threshold.
	Found bool

	// Score is 1.0 for an exact match, the qualifying sentence's similarity
	// for a fuzzy match, and the best similarity seen for a miss.
	Score float64

	// Context is the surrounding document text for an exact match, or the
	// matched/best-scoring sentence otherwise.
	Context string

	// Suggestions lists up to three alternative sentences scoring at least
	// 0.5, descending by score, for a not-found result. On a fuzzy match it
	// carries the candidates collected up to the matching sentence, in
	// document order.
	Suggestions []Suggestion
}

// Matcher locates claimed supporting-text quotations in publication bodies.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a Matcher using the given fuzzy-match threshold.
// Thresholds outside (0, 1] fall back to DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Match determines whether quotation appears in document.
//
// The algorithm runs in strict order: an exact substring test on normalized
// text first, then a sentence-by-sentence similarity scan of the original
// document. The fuzzy scan short-circuits on the first sentence clearing the
// threshold, so document order decides which qualifying sentence is reported
// when several would qualify.
func (m *Matcher) Match(quotation, document string) MatchResult {
	normQuote := Normalize(quotation)
	normDoc := Normalize(document)

	// Exact substring match. The offset is located in normalized text but the
	// context window is sliced from the original document; the two line up as
	// long as normalization does not shorten the text before the match. That
	// drift is inherited behavior and kept as-is.
	if idx := strings.Index(normDoc, normQuote); idx >= 0 {
		start := clamp(idx-contextWindow, 0, len(document))
		end := clamp(idx+len(quotation)+contextWindow, 0, len(document))
		if start > end {
			start = end
		}
		return MatchResult{
			Found:   true,
			Score:   1.0,
			Context: strings.TrimSpace(document[start:end]),
		}
	}

	// Fuzzy path: score each sentence of the original document against the
	// quotation, short-circuiting on the first sentence at or above the
	// threshold.
	var (
		bestScore    float64
		bestSentence string
		suggestions  []Suggestion
	)

	for _, raw := range sentenceRe.Split(document, -1) {
		sentence := strings.TrimSpace(raw)
		if utf8.RuneCountInString(sentence) < minSentenceLen {
			continue
		}

		score := Similarity(normQuote, sentence)
		if score > bestScore {
			bestScore = score
			bestSentence = sentence
		}

		if score >= suggestionFloor {
			suggestions = append(suggestions, Suggestion{Score: score, Sentence: sentence})
		}

		if score >= m.threshold {
			return MatchResult{
				Found:       true,
				Score:       score,
				Context:     sentence,
				Suggestions: suggestions,
			}
		}
	}

	return MatchResult{
		Found:       false,
		Score:       bestScore,
		Context:     bestSentence,
		Suggestions: topSuggestions(suggestions),
	}
}

// topSuggestions orders candidates descending by their displayed (two-decimal)
// score and keeps the best three. The stable sort preserves document order
// among candidates whose displayed scores tie.
func topSuggestions(suggestions []Suggestion) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return displayedScore(suggestions[i].Score) > displayedScore(suggestions[j].Score)
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func displayedScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
