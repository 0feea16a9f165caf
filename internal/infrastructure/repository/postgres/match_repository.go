package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// UpsertMany is last-write-wins on every provider column, has_games
// included. A tournament id already resolved is kept when the row carries none.
func (r *MatchRepository) UpsertMany(ctx context.Context, items []match.Match) error {
	items = lastByKey(items, func(item match.Match) match.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]matchInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, matchInsertModel{
				ID:            string(item.ID),
				StartTime:     item.StartTime.UTC(),
				BlockName:     item.BlockName,
				LeagueSlug:    item.LeagueSlug,
				StrategyType:  item.StrategyType,
				StrategyCount: item.StrategyCount,
				TournamentID:  nullableString(string(item.TournamentID)),
				Team1Name:     item.Team1Name,
				Team2Name:     item.Team2Name,
				HasGames:      item.HasGames,
			})
		}

		query, args, err := qb.InsertModels("matches", models, qb.OnConflict("id").
			Update("start_time", "block_name", "league_slug", "strategy_type", "strategy_count").
			KeepExisting("tournament_id").
			Update("team_1_name", "team_2_name", "has_games").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
	}
	return nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID match.ID) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", string(matchID))).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}
	return matchFromRow(row), true, nil
}

// ListIDsWithoutGames is the anti-join of matches expected to have games
// against the games table.
func (r *MatchRepository) ListIDsWithoutGames(ctx context.Context) ([]match.ID, error) {
	query, args, err := qb.Select("m.id").From("matches m").
		Join("LEFT JOIN games g ON g.match_id = m.id").
		Where(
			qb.Eq("m.has_games", true),
			qb.IsNull("g.id"),
		).
		OrderBy("m.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches without games query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select matches without games: %w", err)
	}

	out := make([]match.ID, 0, len(ids))
	for _, id := range ids {
		out = append(out, match.ID(id))
	}
	return out, nil
}

func (r *MatchRepository) SetHasGames(ctx context.Context, matchID match.ID, hasGames bool) error {
	query, args, err := qb.Update("matches").
		Set("has_games", hasGames).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", string(matchID))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set has games query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set has games match=%s: %w", matchID, err)
	}
	return requireAffected(result, "match", matchID)
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:            match.ID(row.ID),
		StartTime:     row.StartTime.UTC(),
		BlockName:     row.BlockName,
		LeagueSlug:    row.LeagueSlug,
		StrategyType:  row.StrategyType,
		StrategyCount: row.StrategyCount,
		TournamentID:  tournament.ID(stringFromNull(row.TournamentID)),
		Team1Name:     row.Team1Name,
		Team2Name:     row.Team2Name,
		HasGames:      row.HasGames,
	}
}
