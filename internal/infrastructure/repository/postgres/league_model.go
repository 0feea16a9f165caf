package postgres

import "time"

type leagueTableModel struct {
	ID               string    `db:"id"`
	Slug             string    `db:"slug"`
	Name             string    `db:"name"`
	Region           string    `db:"region"`
	Image            string    `db:"image"`
	Priority         int       `db:"priority"`
	FantasyAvailable bool      `db:"fantasy_available"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// leagueInsertModel has no fantasy_available column so a sync can never
// overwrite the operator flag.
type leagueInsertModel struct {
	ID       string `db:"id"`
	Slug     string `db:"slug"`
	Name     string `db:"name"`
	Region   string `db:"region"`
	Image    string `db:"image"`
	Priority int    `db:"priority"`
}
