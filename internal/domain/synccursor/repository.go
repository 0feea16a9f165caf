package synccursor

import (
	"context"
	"fmt"
)

type Repository interface {
	Get(ctx context.Context, name Name) (Record, bool, error)
	Put(ctx context.Context, record Record) error
}

// Store gives typed access to the two named cursors so callers never pass a
// cursor name around.
type Store struct {
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) LoadForward(ctx context.Context) (Forward, bool, error) {
	rec, ok, err := s.repo.Get(ctx, ForwardName)
	if err != nil || !ok {
		return Forward{}, ok, wrap(err, ForwardName, "load")
	}
	return Forward{CurrentToken: rec.CurrentToken}, true, nil
}

func (s *Store) SaveForward(ctx context.Context, cursor Forward) error {
	return wrap(s.repo.Put(ctx, Record{
		Name:         ForwardName,
		CurrentToken: cursor.CurrentToken,
	}), ForwardName, "save")
}

func (s *Store) LoadBackfill(ctx context.Context) (Backfill, bool, error) {
	rec, ok, err := s.repo.Get(ctx, BackfillName)
	if err != nil || !ok {
		return Backfill{}, ok, wrap(err, BackfillName, "load")
	}
	return Backfill{OlderToken: rec.OlderToken}, true, nil
}

func (s *Store) SaveBackfill(ctx context.Context, cursor Backfill) error {
	return wrap(s.repo.Put(ctx, Record{
		Name:       BackfillName,
		OlderToken: cursor.OlderToken,
	}), BackfillName, "save")
}

func wrap(err error, name Name, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s cursor %s: %w", op, name, err)
}
