package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	// UpsertMany writes provider-sourced fields only; fantasy_available is kept.
	UpsertMany(ctx context.Context, items []League) error
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID ID) (League, bool, error)
	SetFantasyAvailable(ctx context.Context, leagueID ID, available bool) error
}
