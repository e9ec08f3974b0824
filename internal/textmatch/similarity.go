package textmatch

import "strings"

// Similarity computes the Jaccard index over the word-token sets of a and b.
// Both inputs are normalized first, then split on whitespace; duplicate words
// collapse, so this is a set-based comparison. Returns 0.0 when either token
// set is empty.
//
// Similarity is symmetric and bounded to [0, 1]. No stemming and no stop-word
// removal happen here; those belong to keyword extraction only.
func Similarity(a, b string) float64 {
	wordsA := tokenSet(Normalize(a))
	wordsB := tokenSet(Normalize(b))

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection

	return float64(intersection) / float64(union)
}

func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(normalized) {
		set[w] = struct{}{}
	}
	return set
}
