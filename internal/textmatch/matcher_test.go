package textmatch

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchExact(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	doc := "Clinical findings: the patient presented with bilateral ptosis and mild ataxia."
	res := m.Match("the patient presented with bilateral ptosis", doc)

	require.True(t, res.Found)
	assert.Equal(t, 1.0, res.Score)
	assert.Empty(t, res.Suggestions)
	// The whole document fits inside the 100-char window on each side.
	assert.Equal(t, doc, res.Context)
}

func TestMatchExactIgnoresCaseAndQuotes(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	res := m.Match("The Patient’s Ptosis", "we noted the patient's ptosis on exam")
	require.True(t, res.Found)
	assert.Equal(t, 1.0, res.Score)
}

func TestMatchExactContextWindow(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	prefix := strings.Repeat("x", 150)
	suffix := strings.Repeat("y", 150)
	quote := "bilateral ptosis"
	doc := prefix + quote + suffix

	res := m.Match(quote, doc)
	require.True(t, res.Found)

	// 100 chars of context on each side of the match.
	want := strings.Repeat("x", 100) + quote + strings.Repeat("y", 100)
	assert.Equal(t, want, res.Context)
}

func TestMatchExactPrecedence(t *testing.T) {
	// An exact substring match must score 1.0 even when a fuzzy sentence
	// would also qualify.
	m := NewMatcher(0.5)

	doc := "Severe weakness was seen. The patient presented with bilateral ptosis today."
	res := m.Match("the patient presented with bilateral ptosis", doc)

	require.True(t, res.Found)
	assert.Equal(t, 1.0, res.Score)
}

func TestMatchFuzzyBelowThreshold(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	doc := "Background text unrelated to anything here. Severe muscle weakness was observed in all six patients. More unrelated trailing text follows."
	res := m.Match("severe muscle weakness observed", doc)

	// Jaccard 4/9 against the middle sentence: below 0.8, not found.
	require.False(t, res.Found)
	assert.InDelta(t, 4.0/9.0, res.Score, 1e-12)
	assert.Equal(t, "Severe muscle weakness was observed in all six patients", res.Context)
}

func TestMatchFuzzyThresholdInclusive(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	// Sentence tokens {severe,muscle,observed,weakness,repeatedly}: 4/5 = 0.8,
	// which meets the inclusive threshold. Word order differs so the exact
	// substring path cannot fire.
	doc := "Unrelated opening sentence about methods. Severe muscle observed weakness repeatedly."
	res := m.Match("severe muscle weakness observed", doc)

	require.True(t, res.Found)
	assert.InDelta(t, 0.8, res.Score, 1e-12)
	assert.Equal(t, "Severe muscle observed weakness repeatedly", res.Context)
}

func TestMatchFuzzyFirstQualifyingSentenceWins(t *testing.T) {
	m := NewMatcher(0.5)

	// Both sentences clear the threshold; the scan must stop at the first in
	// document order even though the second scores higher.
	doc := "Observed severe muscle weakness here today. Observed severe muscle weakness."
	res := m.Match("severe muscle weakness observed", doc)

	require.True(t, res.Found)
	assert.Equal(t, "Observed severe muscle weakness here today", res.Context)
	assert.Less(t, res.Score, 1.0)
}

func TestMatchSkipsShortSentences(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	// "Weakness" alone trims to under 10 chars and must not be scored.
	doc := "Weakness. Entirely different subject matter discussed at length in this sentence."
	res := m.Match("severe muscle weakness observed", doc)

	require.False(t, res.Found)
	assert.NotEqual(t, "Weakness", res.Context)
}

func TestMatchSuggestionsCappedAndSorted(t *testing.T) {
	m := NewMatcher(0.99)

	quote := "severe muscle weakness observed"
	// Four sentences all scoring >= 0.5, in ascending score order so the
	// descending sort is observable. Word order differs from the quotation so
	// the exact substring path cannot fire.
	doc := strings.Join([]string{
		"observed severe muscle weakness alpha beta gamma", // 4/7
		"observed severe muscle weakness alpha beta",       // 4/6
		"observed severe muscle weakness alpha",            // 4/5
		"observed severe muscle weakness waning",           // 4/5
	}, ". ") + "."
	res := m.Match(quote, doc)

	require.False(t, res.Found)
	require.Len(t, res.Suggestions, 3)

	// Descending by score; the two 0.8 candidates keep document order.
	assert.InDelta(t, 0.8, res.Suggestions[0].Score, 1e-12)
	assert.Equal(t, "observed severe muscle weakness alpha", res.Suggestions[0].Sentence)
	assert.InDelta(t, 0.8, res.Suggestions[1].Score, 1e-12)
	assert.Equal(t, "observed severe muscle weakness waning", res.Suggestions[1].Sentence)
	assert.InDelta(t, 4.0/6.0, res.Suggestions[2].Score, 1e-12)
}

func TestSuggestionString(t *testing.T) {
	long := strings.Repeat("a", 120)
	s := Suggestion{Score: 0.666, Sentence: long}
	assert.Equal(t, fmt.Sprintf("Similarity 0.67: %s...", strings.Repeat("a", 100)), s.String())

	short := Suggestion{Score: 0.5, Sentence: "short sentence"}
	assert.Equal(t, "Similarity 0.50: short sentence...", short.String())
}

func TestMatchEmptyDocument(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	res := m.Match("anything at all", "")
	assert.False(t, res.Found)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Suggestions)
}

func TestNewMatcherRejectsBadThreshold(t *testing.T) {
	for _, th := range []float64{-1, 0, 1.5} {
		m := NewMatcher(th)
		assert.Equal(t, DefaultThreshold, m.threshold)
	}
}
