package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
)

type GameDataRepository struct {
	store *Store
}

func NewGameDataRepository(store *Store) *GameDataRepository {
	return &GameDataRepository{store: store}
}

func (r *GameDataRepository) UpsertMetadata(_ context.Context, items []gamedata.Metadata) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.metadata[participantKey{gameID: item.GameID, participantID: item.ParticipantID}] = item
	}
	return nil
}

func (r *GameDataRepository) UpsertStats(_ context.Context, items []gamedata.Stats) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.stats[participantKey{gameID: item.GameID, participantID: item.ParticipantID}] = item
	}
	return nil
}

func (r *GameDataRepository) ListPlayerGameData(_ context.Context, filter gamedata.Filter) ([]gamedata.PlayerGameData, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]gamedata.PlayerGameData, 0)
	for key, meta := range r.store.metadata {
		if filter.GameID != "" && meta.GameID != filter.GameID {
			continue
		}
		if filter.PlayerID != "" && meta.PlayerID != filter.PlayerID {
			continue
		}
		stats, ok := r.store.stats[key]
		if !ok {
			continue
		}
		out = append(out, gamedata.Join(meta, stats))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []gamedata.PlayerGameData{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}
