package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID           string         `db:"id"`
	SummonerName string         `db:"summoner_name"`
	FirstName    string         `db:"first_name"`
	LastName     string         `db:"last_name"`
	Image        string         `db:"image"`
	Role         string         `db:"role"`
	TeamID       sql.NullString `db:"team_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	ID           string  `db:"id"`
	SummonerName string  `db:"summoner_name"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Image        string  `db:"image"`
	Role         string  `db:"role"`
	TeamID       *string `db:"team_id"`
}
