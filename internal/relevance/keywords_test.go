package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKeywords(t *testing.T) {
	tests := []struct {
		name     string
		disease  string
		synonyms []string
		expected []string
	}{
		{
			name:     "empty inputs yield empty set",
			disease:  "",
			synonyms: nil,
			expected: []string{},
		},
		{
			name:    "stop words and short tokens dropped",
			disease: "Cystic Fibrosis Disease",
			expected: []string{
				"cystic", "cystic fibrosis disease", "fibrosis",
			},
		},
		{
			name:    "splits on separators",
			disease: "Charcot-Marie-Tooth disease, type_2A",
			expected: []string{
				"charcot", "charcot-marie-tooth disease, type_2a", "marie", "tooth", "type",
			},
		},
		{
			name:     "synonyms tokenized and merged",
			disease:  "Ehlers-Danlos syndrome",
			synonyms: []string{"EDS classic type", "Danlos disorder"},
			expected: []string{
				"classic", "danlos", "eds", "ehlers", "ehlers-danlos syndrome", "type",
			},
		},
		{
			name:     "synonyms only",
			disease:  "",
			synonyms: []string{"ataxia telangiectasia"},
			expected: []string{"ataxia", "telangiectasia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks := BuildKeywords(tt.disease, tt.synonyms)
			assert.ElementsMatch(t, tt.expected, ks.Terms())
		})
	}
}

func TestBuildKeywordsDeduplicates(t *testing.T) {
	ks := BuildKeywords("marfan marfan", []string{"marfan", "MARFAN"})
	assert.Equal(t, []string{"marfan", "marfan marfan"}, ks.Terms())
}

func TestFromTerms(t *testing.T) {
	ks := FromTerms([]string{" Alpha ", "beta", "ALPHA", ""})
	assert.Equal(t, []string{"alpha", "beta"}, ks.Terms())
	assert.False(t, ks.Empty())

	assert.True(t, FromTerms(nil).Empty())
}
