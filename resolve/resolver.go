// Package resolve turns a free-text employee name plus optional context into
// a single verdict: resolved, ambiguous, or not found. Exact substring search
// runs first; fuzzy matching only kicks in when it returns nothing.
package resolve

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hrplus/leavemgr/match"
	"github.com/hrplus/leavemgr/models"
)

// Store is the record-store collaborator. Implementations own connection
// lifecycle and concurrency; the resolver treats each call as a synchronous
// read and never retries.
type Store interface {
	// FindBySubstring returns employees whose name, email, mobile, or
	// employee number contains term (case-insensitive), ordered by name.
	FindBySubstring(term string) ([]models.Employee, error)

	// FindAllActive returns every active employee.
	FindAllActive() ([]models.Employee, error)
}

// Status tags a resolution outcome.
type Status string

const (
	StatusResolved  Status = "resolved"
	StatusAmbiguous Status = "ambiguous"
	StatusNotFound  Status = "not_found"
)

// Result is the sole output of a resolution call. Employee is set for
// resolved, Employees (in descending score order) for ambiguous.
type Result struct {
	Status    Status
	Employee  *models.Employee
	Employees []models.Employee
	Message   string
}

// Options bound the fuzzy fallback. Zero values take the defaults.
type Options struct {
	Threshold  float64 // minimum fuzzy score, default 0.6
	MaxMatches int     // fuzzy candidate cap, default 5
}

// DefaultMaxMatches caps how many fuzzy candidates survive a fallback search.
const DefaultMaxMatches = 5

// Resolver orchestrates exact search, fuzzy fallback, and context
// disambiguation. It is stateless per invocation and safe for concurrent use.
type Resolver struct {
	store      Store
	matcher    *match.Matcher
	threshold  float64
	maxMatches int
	log        zerolog.Logger
}

// NewResolver builds a resolver over the given store.
func NewResolver(store Store, logger zerolog.Logger, opts Options) *Resolver {
	if opts.Threshold <= 0 {
		opts.Threshold = match.DefaultThreshold
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = DefaultMaxMatches
	}
	return &Resolver{
		store:      store,
		matcher:    match.NewMatcher(match.NewScorer()),
		threshold:  opts.Threshold,
		maxMatches: opts.MaxMatches,
		log:        logger,
	}
}

// Search returns the working candidate set for a term: exact substring
// matches when any exist, otherwise the top fuzzy matches among active
// employees. A store failure degrades to an empty set; it is logged here
// since the user guidance differs from a genuine no-rows result.
func (r *Resolver) Search(searchName string) []models.Employee {
	exact, err := r.store.FindBySubstring(searchName)
	if err != nil {
		r.log.Error().Err(err).Str("term", searchName).Msg("employee store unavailable during exact search")
		exact = nil
	}
	if len(exact) > 0 {
		return exact
	}

	active, err := r.store.FindAllActive()
	if err != nil {
		r.log.Error().Err(err).Str("term", searchName).Msg("employee store unavailable during active-set fetch")
		return nil
	}

	candidates := r.matcher.Match(searchName, active, r.threshold)
	if len(candidates) > r.maxMatches {
		candidates = candidates[:r.maxMatches]
	}

	employees := make([]models.Employee, 0, len(candidates))
	for _, c := range candidates {
		employees = append(employees, c.Employee)
	}
	return employees
}

// Resolve finds the employee meant by searchName. When several candidates
// remain and context is supplied, candidates whose designation, email,
// employee number, or name contains the lowercased context are preferred;
// the ambiguous result always carries the unfiltered set in score order.
func (r *Resolver) Resolve(searchName, context string) Result {
	employees := r.Search(searchName)

	if len(employees) == 0 {
		return Result{
			Status:  StatusNotFound,
			Message: "No employees found matching '" + searchName + "'",
		}
	}

	if len(employees) == 1 {
		return Result{Status: StatusResolved, Employee: &employees[0]}
	}

	if context != "" {
		ctx := strings.ToLower(context)
		var filtered []models.Employee
		for _, emp := range employees {
			if strings.Contains(strings.ToLower(emp.Designation), ctx) ||
				strings.Contains(strings.ToLower(emp.Email), ctx) ||
				strings.Contains(strings.ToLower(emp.EmpNumber), ctx) ||
				strings.Contains(strings.ToLower(emp.Name), ctx) {
				filtered = append(filtered, emp)
			}
		}
		if len(filtered) == 1 {
			return Result{Status: StatusResolved, Employee: &filtered[0]}
		}
	}

	return Result{
		Status:    StatusAmbiguous,
		Employees: employees,
		Message:   fmt.Sprintf("Found %d employees. Please specify:", len(employees)),
	}
}
