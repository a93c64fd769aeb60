// Package store is the seam between the graph service and persistence.
// Engines implement typed collections plus an atomic transaction scope; no
// engine-specific behavior leaks above this interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"compass/internal/model"
)

// Record is what every persisted type exposes to the store: identity,
// ordering key, lifecycle status (empty when the kind has none), substring
// search text, and named field values for exact-match filters.
type Record interface {
	RecordID() string
	RecordCreatedAt() time.Time
	RecordUpdatedAt() time.Time
	RecordStatus() string
	SearchText() []string
	FieldValue(name string) (string, bool)
}

// ErrNotFound reports a missing record id.
var ErrNotFound = errors.New("record not found")

// DuplicateError reports a violated uniqueness constraint, carrying the
// composite key of the colliding record.
type DuplicateError struct {
	Key string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate record for key %q", e.Key)
}

// Filter is applied BEFORE cursor windowing so page boundaries stay stable
// under a fixed filter. All clauses are ANDed.
type Filter struct {
	// Q is a case-insensitive substring match over the record's search text.
	Q string
	// Status, when set, requires an exact status match and disables the
	// implicit deprecated-exclusion below.
	Status string
	// IncludeDeprecated keeps records whose status is literally
	// "deprecated"; any other status (including none) always passes.
	IncludeDeprecated bool
	// From/To bound the creation instant, inclusive.
	From *time.Time
	To   *time.Time
	// Where requires exact field values, e.g. {"experimentId": "..."}.
	Where map[string]string
}

// Matches evaluates the filter against one record.
func (f Filter) Matches(r Record) bool {
	if f.Status != "" {
		if r.RecordStatus() != f.Status {
			return false
		}
	} else if !f.IncludeDeprecated && r.RecordStatus() == string(model.StatusDeprecated) {
		return false
	}
	if f.Q != "" {
		q := strings.ToLower(f.Q)
		found := false
		for _, text := range r.SearchText() {
			if strings.Contains(strings.ToLower(text), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	created := r.RecordCreatedAt()
	if f.From != nil && created.Before(*f.From) {
		return false
	}
	if f.To != nil && created.After(*f.To) {
		return false
	}
	for name, want := range f.Where {
		got, ok := r.FieldValue(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// Collection is the narrow per-kind CRUD surface. List returns records in
// creation-time-descending order (id descending as tiebreaker), filtered,
// starting exclusively after the cursor id, up to limit records (callers
// over-fetch by one for pagination). All returns every record, same order.
type Collection[T Record] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, f Filter, cursor string, limit int) ([]T, error)
	All(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) error
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
}

// Tx exposes the typed collections inside one atomic scope.
type Tx interface {
	Outcomes() Collection[model.Outcome]
	Opportunities() Collection[model.Opportunity]
	Solutions() Collection[model.Solution]
	Assumptions() Collection[model.Assumption]
	OutcomeOpportunities() Collection[model.OutcomeOpportunity]
	OpportunitySolutions() Collection[model.OpportunitySolution]
	SolutionAssumptions() Collection[model.SolutionAssumption]
	Hypotheses() Collection[model.Hypothesis]
	Experiments() Collection[model.Experiment]
	Insights() Collection[model.Insight]
}

// Store is a Tx whose collection operations each commit on their own, plus
// an explicit multi-operation atomic scope for the batch path.
type Store interface {
	Tx
	RunAtomic(ctx context.Context, fn func(Tx) error) error
	Close() error
}
