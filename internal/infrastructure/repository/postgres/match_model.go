package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID            string         `db:"id"`
	StartTime     time.Time      `db:"start_time"`
	BlockName     string         `db:"block_name"`
	LeagueSlug    string         `db:"league_slug"`
	StrategyType  string         `db:"strategy_type"`
	StrategyCount int            `db:"strategy_count"`
	TournamentID  sql.NullString `db:"tournament_id"`
	Team1Name     string         `db:"team_1_name"`
	Team2Name     string         `db:"team_2_name"`
	HasGames      bool           `db:"has_games"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type matchInsertModel struct {
	ID            string    `db:"id"`
	StartTime     time.Time `db:"start_time"`
	BlockName     string    `db:"block_name"`
	LeagueSlug    string    `db:"league_slug"`
	StrategyType  string    `db:"strategy_type"`
	StrategyCount int       `db:"strategy_count"`
	TournamentID  *string   `db:"tournament_id"`
	Team1Name     string    `db:"team_1_name"`
	Team2Name     string    `db:"team_2_name"`
	HasGames      bool      `db:"has_games"`
}
