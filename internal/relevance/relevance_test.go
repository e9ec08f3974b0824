package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreEmptyKeywordSet(t *testing.T) {
	res := Score("any document body at all", KeywordSet{})
	assert.True(t, res.Relevant)
	assert.Equal(t, 1.0, res.Score)

	res = Score("", BuildKeywords("", nil))
	assert.True(t, res.Relevant)
	assert.Equal(t, 1.0, res.Score)
}

func TestScoreFraction(t *testing.T) {
	ks := FromTerms([]string{"alpha", "beta", "gamma", "gammapathy"})

	// Document contains alpha and beta only: 2/4 = 0.5, above the 20% bar.
	res := Score("Raised alpha levels with reduced beta activity.", ks)
	assert.True(t, res.Relevant)
	assert.InDelta(t, 0.5, res.Score, 1e-12)
}

func TestScoreBelowThreshold(t *testing.T) {
	ks := FromTerms([]string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"})

	// 1/6 < 0.2: not relevant.
	res := Score("Only alpha is mentioned here.", ks)
	assert.False(t, res.Relevant)
	assert.InDelta(t, 1.0/6.0, res.Score, 1e-12)
}

func TestScoreSubstringContainment(t *testing.T) {
	// Multi-word keywords must match contiguously; "gamma" matches inside
	// "gammapathy" because this is substring, not token, containment.
	ks := FromTerms([]string{"gamma", "muscle weakness"})

	res := Score("monoclonal gammapathy with muscle weakness", ks)
	assert.True(t, res.Relevant)
	assert.Equal(t, 1.0, res.Score)

	res = Score("weakness of muscle noted", ks)
	assert.False(t, res.Relevant)
	assert.Equal(t, 0.0, res.Score)
}

func TestScoreFullNameOverride(t *testing.T) {
	// Many synonym tokens dilute the ratio below 20%, but the exact disease
	// name in the document forces relevance and a score of at least 0.8.
	ks := BuildKeywords("cystic fibrosis", []string{
		"mucoviscidosis", "pancreatic fibrocystic", "bronchiectasis variant",
		"sweat chloride anomaly", "exocrine failure",
	})

	res := Score("A case report of cystic fibrosis in adults.", ks)
	assert.True(t, res.Relevant)
	assert.GreaterOrEqual(t, res.Score, 0.8)
}

func TestScoreFullNameOverrideKeepsHigherScore(t *testing.T) {
	ks := BuildKeywords("cystic fibrosis", nil)

	// All three keywords (cystic, fibrosis, "cystic fibrosis") match: the
	// token score of 1.0 must not be reduced to the 0.8 floor.
	res := Score("Severe cystic fibrosis was confirmed.", ks)
	assert.True(t, res.Relevant)
	assert.Equal(t, 1.0, res.Score)
}

func TestScoreNormalizesDocument(t *testing.T) {
	ks := BuildKeywords("cystic fibrosis", nil)

	res := Score("CYSTIC\n\tFIBROSIS  registry data", ks)
	assert.True(t, res.Relevant)
	assert.Equal(t, 1.0, res.Score)
}
