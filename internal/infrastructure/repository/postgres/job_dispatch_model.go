package postgres

import (
	"database/sql"
	"time"
)

type jobDispatchEventInsertModel struct {
	RunID        string    `db:"run_id"`
	Status       string    `db:"status"`
	JobID        string    `db:"job_id"`
	Source       string    `db:"source"`
	Attempts     int       `db:"attempts"`
	Payload      string    `db:"payload"`
	ErrorMessage *string   `db:"error_message"`
	TraceID      *string   `db:"trace_id"`
	SpanID       *string   `db:"span_id"`
	OccurredAt   time.Time `db:"occurred_at"`
}

type jobDispatchEventTableModel struct {
	RunID        string         `db:"run_id"`
	Status       string         `db:"status"`
	JobID        string         `db:"job_id"`
	Source       string         `db:"source"`
	Attempts     int            `db:"attempts"`
	Payload      []byte         `db:"payload"`
	ErrorMessage sql.NullString `db:"error_message"`
	TraceID      sql.NullString `db:"trace_id"`
	SpanID       sql.NullString `db:"span_id"`
	OccurredAt   time.Time      `db:"occurred_at"`
}
