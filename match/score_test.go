package match

import "testing"

func TestScoreIdentical(t *testing.T) {
	scorer := NewScorer()
	for _, s := range []string{"John Doe", "a", "jane smith", "O'Brien"} {
		if got := scorer.Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreSymmetric(t *testing.T) {
	scorer := NewScorer()
	pairs := [][2]string{
		{"John Doe", "Jon Doe"},
		{"alice", "bob"},
		{"", "x"},
		{"Ann Lee", "Lee Ann"},
	}
	for _, p := range pairs {
		ab := scorer.Score(p[0], p[1])
		ba := scorer.Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q,%q)=%v != Score(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreBounded(t *testing.T) {
	scorer := NewScorer()
	pairs := [][2]string{
		{"", ""},
		{"", "anything"},
		{"completely different", "zzz"},
		{"John Doe", "John Doe"},
		{"a", "ab"},
	}
	for _, p := range pairs {
		got := scorer.Score(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Score(%q,%q) = %v out of [0,1]", p[0], p[1], got)
		}
	}
}

// Both-empty similarity is 1.0: the distance denominator is clamped to 1 and
// the alignment ratio of two empty sequences is defined as 1. Intentional.
func TestScoreBothEmpty(t *testing.T) {
	scorer := NewScorer()
	if got := scorer.Score("", ""); got != 1.0 {
		t.Errorf("Score of two empty strings = %v, want 1.0", got)
	}
	// Normalization can empty a non-empty input
	if got := scorer.Score("...", "!!!"); got != 1.0 {
		t.Errorf("Score of punctuation-only strings = %v, want 1.0", got)
	}
}

func TestScoreCloseNames(t *testing.T) {
	scorer := NewScorer()
	got := scorer.Score("John Smith", "Jon Smith")
	if got < 0.8 {
		t.Errorf("Score(John Smith, Jon Smith) = %v, want >= 0.8", got)
	}
	far := scorer.Score("John Smith", "Priya Patel")
	if far >= got {
		t.Errorf("unrelated names scored %v, not below %v", far, got)
	}
}

// A scorer without an edit-distance function degrades to the alignment ratio
// for both measures.
func TestScorerWithoutEditDistance(t *testing.T) {
	scorer := NewScorerFunc(nil)
	if got := scorer.Score("John Doe", "John Doe"); got != 1.0 {
		t.Errorf("fallback Score identical = %v, want 1.0", got)
	}
	got := scorer.Score("John Smith", "Jon Smith")
	if got <= 0 || got >= 1 {
		t.Errorf("fallback Score = %v, want in (0,1)", got)
	}
}

// A panicking edit-distance function fails over silently to the ratio.
func TestScorerEditDistancePanicFallback(t *testing.T) {
	boom := func(a, b string) int { panic("no distance primitive") }
	scorer := NewScorerFunc(boom)
	ratioOnly := NewScorerFunc(nil)

	a, b := "John Smith", "Jon Smith"
	if got, want := scorer.Score(a, b), ratioOnly.Score(a, b); got != want {
		t.Errorf("panic fallback Score = %v, want ratio-only %v", got, want)
	}
}
