package team

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Team) error
	GetByID(ctx context.Context, teamID ID) (Team, bool, error)
}
