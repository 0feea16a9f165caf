package memory

import (
	"context"

	"github.com/riskibarqy/esports-sync/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

func (r *PlayerRepository) UpsertMany(_ context.Context, items []player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.players[item.ID] = item
	}
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID player.ID) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.players[playerID]
	return item, ok, nil
}
