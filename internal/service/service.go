// Package service implements the discovery-graph operations on top of the
// store: node and edge CRUD with optimistic concurrency, polymorphic
// attachments, batch edge creation, and outcome tree materialization.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"compass/internal/etag"
	"compass/internal/page"
	"compass/internal/problem"
	"compass/internal/schema"
	"compass/internal/store"
)

type Service struct {
	store store.Store
	log   *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func New(st store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: st, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) newID() string { return uuid.NewString() }

// getRecord maps a missing id to a 404-shaped problem named after the kind.
func getRecord[T store.Record](ctx context.Context, col store.Collection[T], id, kind string) (T, error) {
	rec, err := col.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return rec, problem.NotFound(kind + " not found")
		}
		return rec, err
	}
	return rec, nil
}

// checkToken enforces the optimistic-concurrency precondition before any
// mutation touches the record.
func checkToken(presented string, updatedAt time.Time) error {
	if !etag.Match(presented, updatedAt) {
		return problem.PreconditionFailed()
	}
	return nil
}

// listRecords over-fetches by one and folds the result into a page.
func listRecords[T store.Record](ctx context.Context, col store.Collection[T], q schema.ListQuery) (page.Result[T], error) {
	take := page.Normalize(q.Take)
	items, err := col.List(ctx, q.Filter, q.Cursor, take+1)
	if err != nil {
		return page.Result[T]{}, err
	}
	return page.Window(items, take, func(r T) string { return r.RecordID() }), nil
}
