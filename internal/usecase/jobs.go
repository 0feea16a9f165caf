package usecase

import "context"

// Job ids shared by the scheduler, the manual trigger surface and the
// dispatch ledger.
const (
	JobFetchLeagues          = "fetch_leagues"
	JobFetchTournaments      = "fetch_tournaments"
	JobFetchTeams            = "fetch_teams"
	JobFetchPlayers          = "fetch_players"
	JobFetchSchedule         = "fetch_schedule"
	JobFetchGamesFromMatches = "fetch_games_from_matches"
	JobUpdateGameStates      = "update_game_states"
	JobFetchPlayerMetadata   = "fetch_player_metadata"
	JobFetchPlayerStats      = "fetch_player_stats"
)

// AllJobIDs lists every synchronization job in registration order.
func AllJobIDs() []string {
	return []string{
		JobFetchLeagues,
		JobFetchTournaments,
		JobFetchTeams,
		JobFetchPlayers,
		JobFetchSchedule,
		JobFetchGamesFromMatches,
		JobUpdateGameStates,
		JobFetchPlayerMetadata,
		JobFetchPlayerStats,
	}
}

type SyncJobs struct {
	Reference *ReferenceSyncService
	Schedule  *ScheduleSyncService
	Games     *GameSyncService
	GameData  *GameDataService
}

// RegisterAll binds every job id to its service method.
func (j SyncJobs) RegisterAll(runner *JobRunnerService) error {
	bindings := map[string]JobFunc{
		JobFetchLeagues:          adapt(j.Reference.FetchLeagues),
		JobFetchTournaments:      adapt(j.Reference.FetchTournaments),
		JobFetchTeams:            adapt(j.Reference.FetchTeams),
		JobFetchPlayers:          adapt(j.Reference.FetchPlayers),
		JobFetchSchedule:         adapt(j.Schedule.FetchNewSchedule),
		JobFetchGamesFromMatches: adapt(j.Games.FetchGamesFromMatchIDs),
		JobUpdateGameStates:      adapt(j.Games.UpdateGameStates),
		JobFetchPlayerMetadata:   adapt(j.GameData.FetchPlayerMetadata),
		JobFetchPlayerStats:      adapt(j.GameData.FetchPlayerStats),
	}
	for _, jobID := range AllJobIDs() {
		if err := runner.Register(jobID, bindings[jobID]); err != nil {
			return err
		}
	}
	return nil
}

func adapt[T any](fn func(context.Context) (T, error)) JobFunc {
	return func(ctx context.Context) (any, error) {
		return fn(ctx)
	}
}
