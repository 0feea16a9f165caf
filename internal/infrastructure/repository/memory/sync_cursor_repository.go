package memory

import (
	"context"

	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
)

type SyncCursorRepository struct {
	store *Store
}

func NewSyncCursorRepository(store *Store) *SyncCursorRepository {
	return &SyncCursorRepository{store: store}
}

func (r *SyncCursorRepository) Get(_ context.Context, name synccursor.Name) (synccursor.Record, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.cursors[name]
	return rec, ok, nil
}

func (r *SyncCursorRepository) Put(_ context.Context, record synccursor.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.cursors[record.Name] = record
	return nil
}
