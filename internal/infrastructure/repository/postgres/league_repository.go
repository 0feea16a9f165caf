package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertMany(ctx context.Context, items []league.League) error {
	items = lastByKey(items, func(item league.League) league.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]leagueInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, leagueInsertModel{
				ID:       string(item.ID),
				Slug:     item.Slug,
				Name:     item.Name,
				Region:   item.Region,
				Image:    item.Image,
				Priority: item.Priority,
			})
		}

		query, args, err := qb.InsertModels("leagues", models, qb.OnConflict("id").
			Update("slug", "name", "region", "image", "priority").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert leagues query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert leagues: %w", err)
		}
	}
	return nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		OrderBy("priority", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID league.ID) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("id", string(leagueID))).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}
	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) SetFantasyAvailable(ctx context.Context, leagueID league.ID, available bool) error {
	query, args, err := qb.Update("leagues").
		Set("fantasy_available", available).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", string(leagueID))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set fantasy available query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set fantasy available league=%s: %w", leagueID, err)
	}
	return requireAffected(result, "league", leagueID)
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:               league.ID(row.ID),
		Slug:             row.Slug,
		Name:             row.Name,
		Region:           row.Region,
		Image:            row.Image,
		Priority:         row.Priority,
		FantasyAvailable: row.FantasyAvailable,
	}
}
