package jobscheduler

import "context"

type Repository interface {
	UpsertEvent(ctx context.Context, event DispatchEvent) error
	// ListLatest returns the most recent event per job id.
	ListLatest(ctx context.Context) ([]DispatchEvent, error)
}
