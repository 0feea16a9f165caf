package player

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Player) error
	GetByID(ctx context.Context, playerID ID) (Player, bool, error)
}
