package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) UpsertMany(_ context.Context, items []match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if existing, ok := r.store.matches[item.ID]; ok {
			if item.TournamentID == "" {
				item.TournamentID = existing.TournamentID
			}
		}
		r.store.matches[item.ID] = item
	}
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID match.ID) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) ListIDsWithoutGames(_ context.Context) ([]match.ID, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	withGames := make(map[match.ID]struct{}, len(r.store.games))
	for _, g := range r.store.games {
		withGames[g.MatchID] = struct{}{}
	}

	out := make([]match.ID, 0)
	for id, m := range r.store.matches {
		if !m.HasGames {
			continue
		}
		if _, ok := withGames[id]; ok {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *MatchRepository) SetHasGames(_ context.Context, matchID match.ID, hasGames bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.matches[matchID]
	if !ok {
		return crerr.AssertionFailedf("match %s does not exist", matchID)
	}
	item.HasGames = hasGames
	r.store.matches[matchID] = item
	return nil
}
