package match

import (
	"sort"
	"strings"

	"github.com/hrplus/leavemgr/models"
)

// DefaultThreshold is the minimum score a candidate needs to be retained.
const DefaultThreshold = 0.6

// MatchType distinguishes how a candidate was found.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
)

// Candidate pairs an employee with the score it earned against a search term.
type Candidate struct {
	Employee models.Employee
	Score    float64
	Type     MatchType
}

// Matcher scores employees against a search term using several strategies and
// keeps the best score per employee.
type Matcher struct {
	scorer *Scorer
}

// NewMatcher creates a matcher around the given scorer.
func NewMatcher(scorer *Scorer) *Matcher {
	return &Matcher{scorer: scorer}
}

// Match scores every employee against searchName and returns those at or
// above threshold, sorted by descending score. Ties keep input order. HR name
// data is inconsistently ordered, so besides the whole name each candidate is
// also scored with its name parts swapped and with first/last parts paired
// against the search term's parts.
func (m *Matcher) Match(searchName string, employees []models.Employee, threshold float64) []Candidate {
	searchParts := SplitName(searchName)

	var matches []Candidate
	for _, emp := range employees {
		fullName := strings.TrimSpace(emp.Name)
		scores := []float64{m.scorer.Score(searchName, fullName)}

		if strings.Contains(fullName, " ") {
			fields := strings.Fields(fullName)
			first := fields[0]
			rest := strings.Join(fields[1:], " ")
			scores = append(scores,
				m.scorer.Score(searchName, first+" "+rest),
				m.scorer.Score(searchName, rest+" "+first))
		}

		if searchParts.Last != "" {
			var candFirst, candRest string
			if fullName != "" {
				candFirst = strings.Fields(fullName)[0]
			}
			if strings.Contains(fullName, " ") {
				candRest = strings.Join(strings.Fields(fullName)[1:], " ")
			}
			firstScore := m.scorer.Score(searchParts.First, candFirst)
			lastScore := m.scorer.Score(searchParts.Last, candRest)
			if firstScore > 0 || lastScore > 0 {
				scores = append(scores, (firstScore+lastScore)/2)
			}
		}

		best := 0.0
		for _, s := range scores {
			if s > best {
				best = s
			}
		}

		if best >= threshold {
			matches = append(matches, Candidate{
				Employee: emp,
				Score:    best,
				Type:     MatchFuzzy,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
