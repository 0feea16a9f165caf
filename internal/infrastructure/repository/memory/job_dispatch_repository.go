package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	store *Store
}

func NewJobDispatchRepository(store *Store) *JobDispatchRepository {
	return &JobDispatchRepository{store: store}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, existing := range r.store.dispatches {
		if existing.RunID == event.RunID && existing.Status == event.Status {
			r.store.dispatches[i] = event
			return nil
		}
	}
	r.store.dispatches = append(r.store.dispatches, event)
	return nil
}

func (r *JobDispatchRepository) ListLatest(_ context.Context) ([]jobscheduler.DispatchEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	latest := make(map[string]jobscheduler.DispatchEvent)
	for _, event := range r.store.dispatches {
		if current, ok := latest[event.JobID]; !ok || !event.OccurredAt.Before(current.OccurredAt) {
			latest[event.JobID] = event
		}
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(latest))
	for _, event := range latest {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out, nil
}

// Events returns every recorded event in insertion order.
func (r *JobDispatchRepository) Events() []jobscheduler.DispatchEvent {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]jobscheduler.DispatchEvent(nil), r.store.dispatches...)
}
