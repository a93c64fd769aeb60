package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/model"
)

func outcomeAt(id string, created time.Time) model.Outcome {
	return model.Outcome{
		ID: id, Name: "outcome " + id, Status: model.StatusActive,
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestMemory_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec := outcomeAt("o1", time.Now().UTC())
	require.NoError(t, m.Outcomes().Create(ctx, rec))

	got, err := m.Outcomes().Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = m.Outcomes().Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_CreateDuplicateID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec := outcomeAt("o1", time.Now().UTC())
	require.NoError(t, m.Outcomes().Create(ctx, rec))

	err := m.Outcomes().Create(ctx, rec)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestMemory_EdgePairUniqueness(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	e1 := model.OpportunitySolution{ID: "e1", OpportunityID: "op1", SolutionID: "s1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, m.OpportunitySolutions().Create(ctx, e1))

	e2 := model.OpportunitySolution{ID: "e2", OpportunityID: "op1", SolutionID: "s1", CreatedAt: now, UpdatedAt: now}
	err := m.OpportunitySolutions().Create(ctx, e2)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "op1:s1", dup.Key)

	// Same opportunity with a different solution is fine.
	e3 := model.OpportunitySolution{ID: "e3", OpportunityID: "op1", SolutionID: "s2", CreatedAt: now, UpdatedAt: now}
	assert.NoError(t, m.OpportunitySolutions().Create(ctx, e3))
}

func TestMemory_ListOrderingAndCursor(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, m.Outcomes().Create(ctx, outcomeAt(id, base.Add(time.Duration(i)*time.Minute))))
	}

	// Newest first.
	all, err := m.Outcomes().List(ctx, Filter{}, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "e", all[0].ID)
	assert.Equal(t, "a", all[4].ID)

	// Cursor is exclusive.
	rest, err := m.Outcomes().List(ctx, Filter{}, "d", 2)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "c", rest[0].ID)
	assert.Equal(t, "b", rest[1].ID)

	// Unknown cursor yields an empty page, not an error.
	none, err := m.Outcomes().List(ctx, Filter{}, "gone", 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_ListPaginationRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	want := 23
	for i := 0; i < want; i++ {
		id := string(rune('a' + i))
		require.NoError(t, m.Outcomes().Create(ctx, outcomeAt(id, base.Add(time.Duration(i)*time.Second))))
	}

	seen := map[string]bool{}
	cursor := ""
	for {
		pageItems, err := m.Outcomes().List(ctx, Filter{}, cursor, 5)
		require.NoError(t, err)
		if len(pageItems) == 0 {
			break
		}
		for _, r := range pageItems {
			assert.False(t, seen[r.ID], "no duplicates across pages")
			seen[r.ID] = true
		}
		cursor = pageItems[len(pageItems)-1].ID
	}
	assert.Len(t, seen, want, "no gaps across pages")
}

func TestMemory_FilterStatusAndDeprecated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	active := outcomeAt("o1", now)
	dead := outcomeAt("o2", now.Add(time.Second))
	dead.Status = model.StatusDeprecated
	require.NoError(t, m.Outcomes().Create(ctx, active))
	require.NoError(t, m.Outcomes().Create(ctx, dead))

	// Deprecated hidden by default.
	items, err := m.Outcomes().List(ctx, Filter{}, "", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o1", items[0].ID)

	// includeDeprecated keeps both.
	items, err = m.Outcomes().List(ctx, Filter{IncludeDeprecated: true}, "", 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Explicit status filter overrides the default exclusion.
	items, err = m.Outcomes().List(ctx, Filter{Status: "deprecated"}, "", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o2", items[0].ID)
}

func TestMemory_FilterSearchAndWhere(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	a := outcomeAt("o1", now)
	a.Name = "Improve onboarding completion"
	b := outcomeAt("o2", now.Add(time.Second))
	b.Name = "Reduce churn"
	require.NoError(t, m.Outcomes().Create(ctx, a))
	require.NoError(t, m.Outcomes().Create(ctx, b))

	items, err := m.Outcomes().List(ctx, Filter{Q: "ONBOARDING"}, "", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "o1", items[0].ID)

	exp := model.Experiment{ID: "x1", HypothesisID: "h1", Name: "n", Status: model.ExperimentRunning, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, m.Experiments().Create(ctx, exp))
	got, err := m.Experiments().List(ctx, Filter{Where: map[string]string{"hypothesisId": "h1"}}, "", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	got, err = m.Experiments().List(ctx, Filter{Where: map[string]string{"hypothesisId": "h2"}}, "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemory_RunAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	boom := errors.New("boom")
	err := m.RunAtomic(ctx, func(tx Tx) error {
		if err := tx.Outcomes().Create(ctx, outcomeAt("o1", now)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = m.Outcomes().Get(ctx, "o1")
	assert.ErrorIs(t, err, ErrNotFound, "failed transaction leaves no trace")
}

func TestMemory_UpdateRequiresExistence(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	err := m.Outcomes().Update(ctx, outcomeAt("ghost", time.Now().UTC()))
	assert.ErrorIs(t, err, ErrNotFound)
}
