package postgres

import "time"

type teamTableModel struct {
	ID               string    `db:"id"`
	Slug             string    `db:"slug"`
	Name             string    `db:"name"`
	Code             string    `db:"code"`
	Image            string    `db:"image"`
	AlternativeImage string    `db:"alternative_image"`
	HomeLeague       string    `db:"home_league"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID               string `db:"id"`
	Slug             string `db:"slug"`
	Name             string `db:"name"`
	Code             string `db:"code"`
	Image            string `db:"image"`
	AlternativeImage string `db:"alternative_image"`
	HomeLeague       string `db:"home_league"`
}
