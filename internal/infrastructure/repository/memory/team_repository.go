package memory

import (
	"context"

	"github.com/riskibarqy/esports-sync/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) UpsertMany(_ context.Context, items []team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		r.store.teams[item.ID] = item
	}
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID team.ID) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[teamID]
	return item, ok, nil
}
