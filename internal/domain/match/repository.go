package match

import "context"

type Repository interface {
	UpsertMany(ctx context.Context, items []Match) error
	GetByID(ctx context.Context, matchID ID) (Match, bool, error)
	// ListIDsWithoutGames returns matches with has_games set and no game rows.
	ListIDsWithoutGames(ctx context.Context) ([]ID, error)
	SetHasGames(ctx context.Context, matchID ID, hasGames bool) error
}
