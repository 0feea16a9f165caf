package postgres

import (
	"database/sql"
	"time"
)

type syncCursorTableModel struct {
	Name         string         `db:"name"`
	OlderToken   sql.NullString `db:"older_token"`
	CurrentToken sql.NullString `db:"current_token"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type syncCursorInsertModel struct {
	Name         string  `db:"name"`
	OlderToken   *string `db:"older_token"`
	CurrentToken *string `db:"current_token"`
}
