package match

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Blend weights for the two similarity measures.
const (
	editWeight     = 0.6
	sequenceWeight = 0.4
)

// EditDistanceFunc computes the edit distance between two strings.
type EditDistanceFunc func(a, b string) int

// Scorer computes a blended similarity between two names. The edit-distance
// strategy is selected once at construction; a scorer without one degrades to
// the sequence-alignment ratio for both measures.
type Scorer struct {
	editDistance EditDistanceFunc
}

// NewScorer returns a scorer backed by the Levenshtein edit distance.
func NewScorer() *Scorer {
	return &Scorer{editDistance: levenshtein.ComputeDistance}
}

// NewScorerFunc returns a scorer using the provided edit-distance function.
// Pass nil to fall back to the sequence-alignment ratio alone.
func NewScorerFunc(fn EditDistanceFunc) *Scorer {
	return &Scorer{editDistance: fn}
}

// Score returns a similarity in [0,1] between two names. Both inputs are
// normalized first; 1.0 means the normalized forms are identical. Two empty
// strings score 1.0 (the distance denominator is clamped to 1).
func (s *Scorer) Score(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	seqSim := sequenceRatio(na, nb)
	editSim := s.editSimilarity(na, nb, seqSim)

	return editSim*editWeight + seqSim*sequenceWeight
}

// editSimilarity computes 1 - dist/max(len,len,1). Any failure of the
// configured distance function falls over silently to the fallback value.
func (s *Scorer) editSimilarity(a, b string, fallback float64) (sim float64) {
	if s.editDistance == nil {
		return fallback
	}
	defer func() {
		if recover() != nil {
			sim = fallback
		}
	}()

	dist := s.editDistance(a, b)
	denom := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b), 1)
	return 1 - float64(dist)/float64(denom)
}

// sequenceRatio is the classic matching-blocks ratio 2*M/T over runes.
// Empty against empty is 1.0.
func sequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
