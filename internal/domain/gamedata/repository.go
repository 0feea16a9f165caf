package gamedata

import "context"

type Repository interface {
	UpsertMetadata(ctx context.Context, items []Metadata) error
	UpsertStats(ctx context.Context, items []Stats) error
	// ListPlayerGameData returns the joined view ordered by (game_id, participant_id).
	ListPlayerGameData(ctx context.Context, filter Filter) ([]PlayerGameData, error)
}
