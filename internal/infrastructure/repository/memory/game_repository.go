package memory

import (
	"context"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-sync/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) UpsertMany(_ context.Context, items []game.Game) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		// Tracker columns: stored values win, new rows take the defaults.
		item.HasGameData, item.PendingFinalStatsPulls = true, 0
		if existing, ok := r.store.games[item.ID]; ok {
			item.HasGameData = existing.HasGameData
			item.PendingFinalStatsPulls = existing.PendingFinalStatsPulls
		}
		r.store.games[item.ID] = item
	}
	return nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID game.ID) (game.Game, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.games[gameID]
	return item, ok, nil
}

func (r *GameRepository) ListByIDs(_ context.Context, gameIDs []game.ID) ([]game.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]game.Game, 0, len(gameIDs))
	for _, id := range gameIDs {
		if item, ok := r.store.games[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *GameRepository) ListIDsNeedingStateCheck(_ context.Context, now time.Time) ([]game.ID, error) {
	return r.selectIDs(func(s *Store, g game.Game) bool {
		m, ok := s.matches[g.MatchID]
		if !ok || !m.StartTime.Before(now) {
			return false
		}
		return !g.State.Settled()
	}), nil
}

func (r *GameRepository) ListIDsWithoutPlayerMetadata(_ context.Context) ([]game.ID, error) {
	var counts map[game.ID]int
	return r.selectIDs(func(s *Store, g game.Game) bool {
		if counts == nil {
			counts = countByGame(s.metadata)
		}
		if !g.HasGameData {
			return false
		}
		if g.State != game.StateCompleted && g.State != game.StateInProgress {
			return false
		}
		return counts[g.ID] != game.ParticipantsPerGame
	}), nil
}

func (r *GameRepository) ListIDsToFetchPlayerStatsFor(_ context.Context) ([]game.ID, error) {
	var counts map[game.ID]int
	return r.selectIDs(func(s *Store, g game.Game) bool {
		if counts == nil {
			counts = countByGame(s.stats)
		}
		if !g.HasGameData {
			return false
		}
		switch g.State {
		case game.StateInProgress:
			return true
		case game.StateCompleted:
			return counts[g.ID] < game.ParticipantsPerGame
		default:
			return false
		}
	}), nil
}

func (r *GameRepository) ListIDsFlaggedForLastStatsFetch(_ context.Context) ([]game.ID, error) {
	return r.selectIDs(func(_ *Store, g game.Game) bool { return g.LastStatsFetch() }), nil
}

func (r *GameRepository) UpdateState(_ context.Context, gameID game.ID, state game.State) error {
	return r.patch(gameID, func(g *game.Game) { g.State = state })
}

func (r *GameRepository) SetHasGameData(_ context.Context, gameID game.ID, hasGameData bool) error {
	return r.patch(gameID, func(g *game.Game) { g.HasGameData = hasGameData })
}

func (r *GameRepository) SetPendingFinalStatsPulls(_ context.Context, gameID game.ID, pulls int) error {
	return r.patch(gameID, func(g *game.Game) { g.PendingFinalStatsPulls = max(pulls, 0) })
}

func (r *GameRepository) patch(gameID game.ID, apply func(*game.Game)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.games[gameID]
	if !ok {
		return crerr.AssertionFailedf("game %s does not exist", gameID)
	}
	apply(&item)
	r.store.games[gameID] = item
	return nil
}

func (r *GameRepository) selectIDs(keep func(*Store, game.Game) bool) []game.ID {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]game.ID, 0)
	for id, g := range r.store.games {
		if keep(r.store, g) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func countByGame[V any](rows map[participantKey]V) map[game.ID]int {
	counts := make(map[game.ID]int)
	for key := range rows {
		counts[key.gameID]++
	}
	return counts
}
