package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) UpsertMany(_ context.Context, items []tournament.Tournament) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.tournaments[item.ID] = item
	}
	return nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID tournament.ID) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.tournaments[tournamentID]
	return item, ok, nil
}

func (r *TournamentRepository) ListByLeague(_ context.Context, leagueID league.ID) ([]tournament.Tournament, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]tournament.Tournament, 0, 8)
	for _, item := range r.store.tournaments {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}
