package game

import (
	"context"
	"time"
)

// ParticipantsPerGame is the number of metadata/stats rows of a complete game.
const ParticipantsPerGame = 10

type Repository interface {
	// UpsertMany writes id, state, number and match id. Tracker-owned fields
	// (has_game_data, pending final stats pulls) keep their stored values.
	UpsertMany(ctx context.Context, items []Game) error
	GetByID(ctx context.Context, gameID ID) (Game, bool, error)
	ListByIDs(ctx context.Context, gameIDs []ID) ([]Game, error)

	// ListIDsNeedingStateCheck returns games whose match started before now
	// and whose state is neither completed nor unneeded.
	ListIDsNeedingStateCheck(ctx context.Context, now time.Time) ([]ID, error)
	// ListIDsWithoutPlayerMetadata returns completed or in-progress games with
	// data whose metadata row count is not exactly ParticipantsPerGame.
	ListIDsWithoutPlayerMetadata(ctx context.Context) ([]ID, error)
	// ListIDsToFetchPlayerStatsFor returns games with data that are in
	// progress, or completed with fewer than ParticipantsPerGame stats rows.
	ListIDsToFetchPlayerStatsFor(ctx context.Context) ([]ID, error)
	// ListIDsFlaggedForLastStatsFetch returns games with pending final pulls.
	ListIDsFlaggedForLastStatsFetch(ctx context.Context) ([]ID, error)

	UpdateState(ctx context.Context, gameID ID, state State) error
	SetHasGameData(ctx context.Context, gameID ID, hasGameData bool) error
	SetPendingFinalStatsPulls(ctx context.Context, gameID ID, pulls int) error
}
