package postgres

import "time"

type tournamentTableModel struct {
	ID        string    `db:"id"`
	Slug      string    `db:"slug"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	LeagueID  string    `db:"league_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type tournamentInsertModel struct {
	ID        string    `db:"id"`
	Slug      string    `db:"slug"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	LeagueID  string    `db:"league_id"`
}
