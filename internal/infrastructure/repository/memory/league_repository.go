package memory

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func NewLeagueRepository(store *Store) *LeagueRepository {
	return &LeagueRepository{store: store}
}

func (r *LeagueRepository) UpsertMany(_ context.Context, items []league.League) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		if existing, ok := r.store.leagues[item.ID]; ok {
			item.FantasyAvailable = existing.FantasyAvailable
		} else {
			item.FantasyAvailable = false
		}
		r.store.leagues[item.ID] = item
	}
	return nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]league.League, 0, len(r.store.leagues))
	for _, item := range r.store.leagues {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID league.ID) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.leagues[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) SetFantasyAvailable(_ context.Context, leagueID league.ID, available bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.leagues[leagueID]
	if !ok {
		return crerr.AssertionFailedf("league %s does not exist", leagueID)
	}
	item.FantasyAvailable = available
	r.store.leagues[leagueID] = item
	return nil
}
