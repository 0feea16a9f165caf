package postgres

import "time"

type gameTableModel struct {
	ID                     string    `db:"id"`
	State                  string    `db:"state"`
	Number                 int       `db:"number"`
	MatchID                string    `db:"match_id"`
	HasGameData            bool      `db:"has_game_data"`
	PendingFinalStatsPulls int       `db:"pending_final_stats_pulls"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// gameInsertModel leaves out the tracker columns; new rows take the column
// defaults and existing rows keep what the trackers wrote.
type gameInsertModel struct {
	ID      string `db:"id"`
	State   string `db:"state"`
	Number  int    `db:"number"`
	MatchID string `db:"match_id"`
}
