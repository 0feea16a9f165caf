package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
)

// SchedulePage is one page of the provider's paginated schedule. Matches come
// without a tournament id; the page does not carry it. Empty tokens mean there
// is no page in that direction.
type SchedulePage struct {
	OlderToken string
	NewerToken string
	Matches    []match.Match
}

// GameState is the provider's current view of one game.
type GameState struct {
	ID    game.ID
	State game.State
}

// EsportsFeed is the outbound provider. Implementations never retry; an
// empty slice with a nil error is a valid "nothing there" answer.
type EsportsFeed interface {
	GetLeagues(ctx context.Context) ([]league.League, error)
	GetTeams(ctx context.Context) ([]team.Team, error)
	GetPlayers(ctx context.Context) ([]player.Player, error)
	GetTournamentsForLeague(ctx context.Context, leagueID league.ID) ([]tournament.Tournament, error)
	GetGamesFromEventDetails(ctx context.Context, matchID match.ID) ([]game.Game, error)
	GetTournamentIDForMatch(ctx context.Context, matchID match.ID) (tournament.ID, error)
	GetGames(ctx context.Context, gameIDs []game.ID) ([]GameState, error)
	GetPlayerMetadataForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Metadata, error)
	GetPlayerStatsForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Stats, error)
	GetSchedule(ctx context.Context, pageToken string) (SchedulePage, error)
}
