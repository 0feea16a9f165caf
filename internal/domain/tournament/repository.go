package tournament

import (
	"context"

	"github.com/riskibarqy/esports-sync/internal/domain/league"
)

type Repository interface {
	UpsertMany(ctx context.Context, items []Tournament) error
	GetByID(ctx context.Context, tournamentID ID) (Tournament, bool, error)
	ListByLeague(ctx context.Context, leagueID league.ID) ([]Tournament, error)
}
