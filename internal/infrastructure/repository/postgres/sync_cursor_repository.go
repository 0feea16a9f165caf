package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type SyncCursorRepository struct {
	db *sqlx.DB
}

func NewSyncCursorRepository(db *sqlx.DB) *SyncCursorRepository {
	return &SyncCursorRepository{db: db}
}

func (r *SyncCursorRepository) Get(ctx context.Context, name synccursor.Name) (synccursor.Record, bool, error) {
	query, args, err := qb.Select("*").From("sync_cursors").
		Where(qb.Eq("name", string(name))).
		ToSQL()
	if err != nil {
		return synccursor.Record{}, false, fmt.Errorf("build get sync cursor query: %w", err)
	}

	var row syncCursorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return synccursor.Record{}, false, nil
		}
		return synccursor.Record{}, false, fmt.Errorf("get sync cursor: %w", err)
	}

	return synccursor.Record{
		Name:         synccursor.Name(row.Name),
		OlderToken:   stringFromNull(row.OlderToken),
		CurrentToken: stringFromNull(row.CurrentToken),
	}, true, nil
}

// Put replaces both tokens; each cursor row is a singleton.
func (r *SyncCursorRepository) Put(ctx context.Context, record synccursor.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("sync_cursors", syncCursorInsertModel{
		Name:         string(record.Name),
		OlderToken:   nullableString(record.OlderToken),
		CurrentToken: nullableString(record.CurrentToken),
	}, qb.OnConflict("name").
		Update("older_token", "current_token").
		Touch("updated_at"))
	if err != nil {
		return fmt.Errorf("build upsert sync cursor query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert sync cursor name=%s: %w", record.Name, err)
	}
	return nil
}
