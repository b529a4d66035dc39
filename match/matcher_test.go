package match

import (
	"testing"

	"github.com/hrplus/leavemgr/models"
)

func employees(names ...string) []models.Employee {
	out := make([]models.Employee, len(names))
	for i, n := range names {
		out[i] = models.Employee{ID: uint(i + 1), Name: n, Active: true}
	}
	return out
}

func newTestMatcher() *Matcher {
	return NewMatcher(NewScorer())
}

func TestMatchExactName(t *testing.T) {
	m := newTestMatcher()
	got := m.Match("John Doe", employees("John Doe"), DefaultThreshold)

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Score != 1.0 {
		t.Errorf("score = %v, want 1.0", got[0].Score)
	}
	if got[0].Type != MatchFuzzy {
		t.Errorf("type = %v, want fuzzy", got[0].Type)
	}
}

// Callers often supply name parts in the wrong order; the reversed-order
// scoring pass must recover those.
func TestMatchReversedOrder(t *testing.T) {
	m := newTestMatcher()
	got := m.Match("Doe John", employees("John Doe"), DefaultThreshold)

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Score < DefaultThreshold {
		t.Errorf("score = %v, want >= %v", got[0].Score, DefaultThreshold)
	}
}

func TestMatchThresholdFilters(t *testing.T) {
	m := newTestMatcher()
	got := m.Match("John Smith", employees("Jon Smith", "Priya Patel"), DefaultThreshold)

	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].Employee.Name != "Jon Smith" {
		t.Errorf("matched %q, want Jon Smith", got[0].Employee.Name)
	}
}

func TestMatchOrderingDescending(t *testing.T) {
	m := newTestMatcher()
	got := m.Match("John Smith",
		employees("John Smythe", "John Smith", "Jon Smith"), DefaultThreshold)

	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("candidates out of order at %d: %v > %v", i, got[i].Score, got[i-1].Score)
		}
	}
	if got[0].Employee.Name != "John Smith" {
		t.Errorf("best match = %q, want John Smith", got[0].Employee.Name)
	}
}

func TestMatchNeverExceedsInput(t *testing.T) {
	m := newTestMatcher()
	input := employees("John Doe", "Jane Doe", "John Dough")
	got := m.Match("John Doe", input, 0.0)

	if len(got) > len(input) {
		t.Fatalf("returned %d candidates for %d inputs", len(got), len(input))
	}
	for _, c := range got {
		if c.Score < 0.0 {
			t.Errorf("candidate score %v below threshold 0.0", c.Score)
		}
	}
}

func TestMatchEmptyCandidates(t *testing.T) {
	m := newTestMatcher()
	if got := m.Match("John Doe", nil, DefaultThreshold); len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}

// Single-token candidate names must not panic the part-pairing pass.
func TestMatchSingleTokenCandidate(t *testing.T) {
	m := newTestMatcher()
	got := m.Match("Cher Smith", employees("Cher"), 0.0)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
}
