package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 0.0},
		{"one empty", "some words here", "", 0.0},
		{"identical", "severe muscle weakness", "severe muscle weakness", 1.0},
		{"identical modulo case and spacing", "Severe  Muscle Weakness", "severe muscle weakness", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		// quote tokens {severe,muscle,weakness,observed}, sentence tokens add
		// {was,in,all,six,patients}: intersection 4, union 9.
		{"spec fuzzy example", "severe muscle weakness observed",
			"Severe muscle weakness was observed in all six patients", 4.0 / 9.0},
		// duplicates collapse: set comparison, not multiset
		{"duplicates collapse", "word word word", "word", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"the patient presented with ptosis", "ptosis was present in the patient"},
		{"alpha beta gamma", "beta gamma delta epsilon"},
		{"", "nonempty"},
		{"one two three", "one two three"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		assert.Equal(t, ab, ba, "similarity must be symmetric for %q / %q", p[0], p[1])
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
	}
}

func TestSimilaritySelfIsOne(t *testing.T) {
	for _, s := range []string{"a", "bilateral ptosis", "Severe muscle weakness was observed."} {
		assert.Equal(t, 1.0, Similarity(s, s))
	}
}
