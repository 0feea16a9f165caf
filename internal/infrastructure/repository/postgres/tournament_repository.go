package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) UpsertMany(ctx context.Context, items []tournament.Tournament) error {
	items = lastByKey(items, func(item tournament.Tournament) tournament.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]tournamentInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, tournamentInsertModel{
				ID:        string(item.ID),
				Slug:      item.Slug,
				StartDate: tournament.DateOf(item.StartDate),
				EndDate:   tournament.DateOf(item.EndDate),
				LeagueID:  string(item.LeagueID),
			})
		}

		query, args, err := qb.InsertModels("tournaments", models, qb.OnConflict("id").
			Update("slug", "start_date", "end_date", "league_id").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert tournaments query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert tournaments: %w", err)
		}
	}
	return nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID tournament.ID) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("id", string(tournamentID))).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament by id query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}
	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) ListByLeague(ctx context.Context, leagueID league.ID) ([]tournament.Tournament, error) {
	query, args, err := qb.Select("*").From("tournaments").
		Where(qb.Eq("league_id", string(leagueID))).
		OrderBy("start_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select tournaments by league query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tournaments by league: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}
	return out, nil
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:        tournament.ID(row.ID),
		Slug:      row.Slug,
		StartDate: tournament.DateOf(row.StartDate),
		EndDate:   tournament.DateOf(row.EndDate),
		LeagueID:  league.ID(row.LeagueID),
	}
}
