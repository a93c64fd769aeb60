package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"compass/internal/model"
)

// Snapshot is the full graph state keyed by record id. It doubles as the
// serialization unit for snapshotting engines.
type Snapshot struct {
	Outcomes             map[string]model.Outcome             `json:"outcomes"`
	Opportunities        map[string]model.Opportunity         `json:"opportunities"`
	Solutions            map[string]model.Solution            `json:"solutions"`
	Assumptions          map[string]model.Assumption          `json:"assumptions"`
	OutcomeOpportunities map[string]model.OutcomeOpportunity  `json:"outcomeOpportunities"`
	OpportunitySolutions map[string]model.OpportunitySolution `json:"opportunitySolutions"`
	SolutionAssumptions  map[string]model.SolutionAssumption  `json:"solutionAssumptions"`
	Hypotheses           map[string]model.Hypothesis          `json:"hypotheses"`
	Experiments          map[string]model.Experiment          `json:"experiments"`
	Insights             map[string]model.Insight             `json:"insights"`
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		Outcomes:             cloneMap(s.Outcomes),
		Opportunities:        cloneMap(s.Opportunities),
		Solutions:            cloneMap(s.Solutions),
		Assumptions:          cloneMap(s.Assumptions),
		OutcomeOpportunities: cloneMap(s.OutcomeOpportunities),
		OpportunitySolutions: cloneMap(s.OpportunitySolutions),
		SolutionAssumptions:  cloneMap(s.SolutionAssumptions),
		Hypotheses:           cloneMap(s.Hypotheses),
		Experiments:          cloneMap(s.Experiments),
		Insights:             cloneMap(s.Insights),
	}
}

func cloneMap[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Memory is the in-process engine: a mutex-guarded snapshot with
// clone-then-swap transactions. It backs tests and is the substrate the
// SQLite engine snapshots from.
type Memory struct {
	mu   sync.RWMutex
	data *Snapshot

	// afterCommit, when set, runs with the staged snapshot before the swap;
	// an error aborts the commit. Used by snapshotting engines.
	afterCommit func(*Snapshot) error
}

func NewMemory() *Memory {
	empty := Snapshot{}
	return &Memory{data: empty.clone()}
}

func (m *Memory) Close() error { return nil }

// ExportState returns a deep copy of the current state.
func (m *Memory) ExportState() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.data.clone()
}

// ImportState replaces the current state wholesale.
func (m *Memory) ImportState(sn Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = sn.clone()
}

// RunAtomic stages a clone of the state, applies fn against it, and swaps
// it in only if fn (and any commit hook) succeeds. Partial application is
// never observable.
func (m *Memory) RunAtomic(ctx context.Context, fn func(Tx) error) error {
	return m.mutate(func(st *Snapshot) error {
		return fn(memTx{st: st})
	})
}

func (m *Memory) mutate(fn func(*Snapshot) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	staged := m.data.clone()
	if err := fn(staged); err != nil {
		return err
	}
	if m.afterCommit != nil {
		if err := m.afterCommit(staged); err != nil {
			return fmt.Errorf("commit snapshot: %w", err)
		}
	}
	m.data = staged
	return nil
}

func (m *Memory) Outcomes() Collection[model.Outcome] {
	return memCollection[model.Outcome]{store: m, kind: "outcome",
		sel: func(st *Snapshot) map[string]model.Outcome { return st.Outcomes }}
}

func (m *Memory) Opportunities() Collection[model.Opportunity] {
	return memCollection[model.Opportunity]{store: m, kind: "opportunity",
		sel: func(st *Snapshot) map[string]model.Opportunity { return st.Opportunities }}
}

func (m *Memory) Solutions() Collection[model.Solution] {
	return memCollection[model.Solution]{store: m, kind: "solution",
		sel: func(st *Snapshot) map[string]model.Solution { return st.Solutions }}
}

func (m *Memory) Assumptions() Collection[model.Assumption] {
	return memCollection[model.Assumption]{store: m, kind: "assumption",
		sel: func(st *Snapshot) map[string]model.Assumption { return st.Assumptions }}
}

func (m *Memory) OutcomeOpportunities() Collection[model.OutcomeOpportunity] {
	return memCollection[model.OutcomeOpportunity]{store: m, kind: "outcome-opportunity edge",
		sel:    func(st *Snapshot) map[string]model.OutcomeOpportunity { return st.OutcomeOpportunities },
		unique: model.OutcomeOpportunity.PairKey}
}

func (m *Memory) OpportunitySolutions() Collection[model.OpportunitySolution] {
	return memCollection[model.OpportunitySolution]{store: m, kind: "opportunity-solution edge",
		sel:    func(st *Snapshot) map[string]model.OpportunitySolution { return st.OpportunitySolutions },
		unique: model.OpportunitySolution.PairKey}
}

func (m *Memory) SolutionAssumptions() Collection[model.SolutionAssumption] {
	return memCollection[model.SolutionAssumption]{store: m, kind: "solution-assumption edge",
		sel:    func(st *Snapshot) map[string]model.SolutionAssumption { return st.SolutionAssumptions },
		unique: model.SolutionAssumption.PairKey}
}

func (m *Memory) Hypotheses() Collection[model.Hypothesis] {
	return memCollection[model.Hypothesis]{store: m, kind: "hypothesis",
		sel: func(st *Snapshot) map[string]model.Hypothesis { return st.Hypotheses }}
}

func (m *Memory) Experiments() Collection[model.Experiment] {
	return memCollection[model.Experiment]{store: m, kind: "experiment",
		sel: func(st *Snapshot) map[string]model.Experiment { return st.Experiments }}
}

func (m *Memory) Insights() Collection[model.Insight] {
	return memCollection[model.Insight]{store: m, kind: "insight",
		sel: func(st *Snapshot) map[string]model.Insight { return st.Insights }}
}

// memTx binds collections to a staged snapshot; operations apply directly
// and become visible only when the transaction commits.
type memTx struct {
	st *Snapshot
}

func (t memTx) Outcomes() Collection[model.Outcome] {
	return memCollection[model.Outcome]{st: t.st, kind: "outcome",
		sel: func(st *Snapshot) map[string]model.Outcome { return st.Outcomes }}
}

func (t memTx) Opportunities() Collection[model.Opportunity] {
	return memCollection[model.Opportunity]{st: t.st, kind: "opportunity",
		sel: func(st *Snapshot) map[string]model.Opportunity { return st.Opportunities }}
}

func (t memTx) Solutions() Collection[model.Solution] {
	return memCollection[model.Solution]{st: t.st, kind: "solution",
		sel: func(st *Snapshot) map[string]model.Solution { return st.Solutions }}
}

func (t memTx) Assumptions() Collection[model.Assumption] {
	return memCollection[model.Assumption]{st: t.st, kind: "assumption",
		sel: func(st *Snapshot) map[string]model.Assumption { return st.Assumptions }}
}

func (t memTx) OutcomeOpportunities() Collection[model.OutcomeOpportunity] {
	return memCollection[model.OutcomeOpportunity]{st: t.st, kind: "outcome-opportunity edge",
		sel:    func(st *Snapshot) map[string]model.OutcomeOpportunity { return st.OutcomeOpportunities },
		unique: model.OutcomeOpportunity.PairKey}
}

func (t memTx) OpportunitySolutions() Collection[model.OpportunitySolution] {
	return memCollection[model.OpportunitySolution]{st: t.st, kind: "opportunity-solution edge",
		sel:    func(st *Snapshot) map[string]model.OpportunitySolution { return st.OpportunitySolutions },
		unique: model.OpportunitySolution.PairKey}
}

func (t memTx) SolutionAssumptions() Collection[model.SolutionAssumption] {
	return memCollection[model.SolutionAssumption]{st: t.st, kind: "solution-assumption edge",
		sel:    func(st *Snapshot) map[string]model.SolutionAssumption { return st.SolutionAssumptions },
		unique: model.SolutionAssumption.PairKey}
}

func (t memTx) Hypotheses() Collection[model.Hypothesis] {
	return memCollection[model.Hypothesis]{st: t.st, kind: "hypothesis",
		sel: func(st *Snapshot) map[string]model.Hypothesis { return st.Hypotheses }}
}

func (t memTx) Experiments() Collection[model.Experiment] {
	return memCollection[model.Experiment]{st: t.st, kind: "experiment",
		sel: func(st *Snapshot) map[string]model.Experiment { return st.Experiments }}
}

func (t memTx) Insights() Collection[model.Insight] {
	return memCollection[model.Insight]{st: t.st, kind: "insight",
		sel: func(st *Snapshot) map[string]model.Insight { return st.Insights }}
}

type memCollection[T Record] struct {
	store *Memory   // set for auto-committing collections
	st    *Snapshot // set inside a transaction
	kind  string
	sel   func(*Snapshot) map[string]T
	// unique derives a composite key that must be unique within the
	// collection (edge endpoint pairs); nil when only the id is unique.
	unique func(T) string
}

func (c memCollection[T]) read(fn func(*Snapshot)) {
	if c.st != nil {
		fn(c.st)
		return
	}
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	fn(c.store.data)
}

func (c memCollection[T]) write(fn func(*Snapshot) error) error {
	if c.st != nil {
		return fn(c.st)
	}
	return c.store.mutate(fn)
}

func (c memCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	var ok bool
	c.read(func(st *Snapshot) {
		out, ok = c.sel(st)[id]
	})
	if !ok {
		return out, fmt.Errorf("%s %s: %w", c.kind, id, ErrNotFound)
	}
	return out, nil
}

func (c memCollection[T]) All(ctx context.Context) ([]T, error) {
	var items []T
	c.read(func(st *Snapshot) {
		for _, r := range c.sel(st) {
			items = append(items, r)
		}
	})
	sortCreatedDesc(items)
	return items, nil
}

func (c memCollection[T]) List(ctx context.Context, f Filter, cursor string, limit int) ([]T, error) {
	var items []T
	c.read(func(st *Snapshot) {
		for _, r := range c.sel(st) {
			if f.Matches(r) {
				items = append(items, r)
			}
		}
	})
	sortCreatedDesc(items)
	if cursor != "" {
		idx := -1
		for i, r := range items {
			if r.RecordID() == cursor {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Cursor fell out of the filtered window; nothing past it.
			return []T{}, nil
		}
		items = items[idx+1:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c memCollection[T]) Create(ctx context.Context, rec T) error {
	return c.write(func(st *Snapshot) error {
		rows := c.sel(st)
		id := rec.RecordID()
		if _, exists := rows[id]; exists {
			return &DuplicateError{Key: id}
		}
		if c.unique != nil {
			key := c.unique(rec)
			for _, other := range rows {
				if c.unique(other) == key {
					return &DuplicateError{Key: key}
				}
			}
		}
		rows[id] = rec
		return nil
	})
}

func (c memCollection[T]) Update(ctx context.Context, rec T) error {
	return c.write(func(st *Snapshot) error {
		rows := c.sel(st)
		id := rec.RecordID()
		if _, exists := rows[id]; !exists {
			return fmt.Errorf("%s %s: %w", c.kind, id, ErrNotFound)
		}
		if c.unique != nil {
			key := c.unique(rec)
			for otherID, other := range rows {
				if otherID != id && c.unique(other) == key {
					return &DuplicateError{Key: key}
				}
			}
		}
		rows[id] = rec
		return nil
	})
}

func (c memCollection[T]) Delete(ctx context.Context, id string) error {
	return c.write(func(st *Snapshot) error {
		rows := c.sel(st)
		if _, exists := rows[id]; !exists {
			return fmt.Errorf("%s %s: %w", c.kind, id, ErrNotFound)
		}
		delete(rows, id)
		return nil
	})
}

func sortCreatedDesc[T Record](items []T) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].RecordCreatedAt(), items[j].RecordCreatedAt()
		if !a.Equal(b) {
			return a.After(b)
		}
		return items[i].RecordID() > items[j].RecordID()
	})
}
