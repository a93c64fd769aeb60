package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/model"
)

func TestSQLite_ReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := NewSQLite(path)
	require.NoError(t, err)

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	out := model.Outcome{ID: "o1", Name: "Grow activation", Status: model.StatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Outcomes().Create(ctx, out))
	edge := model.OutcomeOpportunity{ID: "e1", OutcomeID: "o1", OpportunityID: "op1", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.OutcomeOpportunities().Create(ctx, edge))
	require.NoError(t, st.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Outcomes().Get(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Grow activation", got.Name)
	assert.True(t, got.CreatedAt.Equal(now))

	gotEdge, err := reopened.OutcomeOpportunities().Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "op1", gotEdge.OpportunityID)
}

func TestSQLite_FailedTransactionNotPersisted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	st, err := NewSQLite(path)
	require.NoError(t, err)

	now := time.Now().UTC()
	boom := errors.New("boom")
	err = st.RunAtomic(ctx, func(tx Tx) error {
		if err := tx.Solutions().Create(ctx, model.Solution{
			ID: "s1", Title: "t", Status: model.StatusActive, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, st.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, err = reopened.Solutions().Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_DriverSelection(t *testing.T) {
	st, err := Open(DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, st)

	_, err = Open("postgres", "")
	assert.Error(t, err)
}
