package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) UpsertMany(ctx context.Context, items []game.Game) error {
	items = lastByKey(items, func(item game.Game) game.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]gameInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, gameInsertModel{
				ID:      string(item.ID),
				State:   string(item.State),
				Number:  item.Number,
				MatchID: string(item.MatchID),
			})
		}

		query, args, err := qb.InsertModels("games", models, qb.OnConflict("id").
			Update("state", "number", "match_id").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert games query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return crerr.NewAssertionErrorWithWrappedErrf(err, "upsert games: match is not stored")
			}
			return fmt.Errorf("upsert games: %w", err)
		}
	}
	return nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID game.ID) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", string(gameID))).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game by id: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByIDs(ctx context.Context, gameIDs []game.ID) ([]game.Game, error) {
	if len(gameIDs) == 0 {
		return []game.Game{}, nil
	}

	query, args, err := qb.Select("*").From("games").
		Where(qb.In("id", toAnySlice(gameIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by ids query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by ids: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) ListIDsNeedingStateCheck(ctx context.Context, now time.Time) ([]game.ID, error) {
	builder := qb.Select("g.id").From("games g").
		Join("JOIN matches m ON m.id = g.match_id").
		Where(
			qb.Expr("m.start_time < ?", now.UTC()),
			qb.NotIn("g.state", []any{string(game.StateCompleted), string(game.StateUnneeded)}),
		).
		OrderBy("g.id")
	return r.selectIDs(ctx, "games needing state check", builder)
}

func (r *GameRepository) ListIDsWithoutPlayerMetadata(ctx context.Context) ([]game.ID, error) {
	builder := qb.Select("g.id").From("games g").
		Join("LEFT JOIN game_player_metadata pm ON pm.game_id = g.id").
		Where(
			qb.Eq("g.has_game_data", true),
			qb.In("g.state", []any{string(game.StateCompleted), string(game.StateInProgress)}),
		).
		GroupBy("g.id").
		Having(qb.Expr("COUNT(pm.participant_id) <> ?", game.ParticipantsPerGame)).
		OrderBy("g.id")
	return r.selectIDs(ctx, "games without player metadata", builder)
}

func (r *GameRepository) ListIDsToFetchPlayerStatsFor(ctx context.Context) ([]game.ID, error) {
	builder := qb.Select("g.id").From("games g").
		Join("LEFT JOIN game_player_stats ps ON ps.game_id = g.id").
		Where(
			qb.Eq("g.has_game_data", true),
			qb.In("g.state", []any{string(game.StateCompleted), string(game.StateInProgress)}),
		).
		GroupBy("g.id", "g.state").
		Having(qb.Expr("(g.state = ? OR COUNT(ps.participant_id) < ?)", string(game.StateInProgress), game.ParticipantsPerGame)).
		OrderBy("g.id")
	return r.selectIDs(ctx, "games to fetch player stats for", builder)
}

func (r *GameRepository) ListIDsFlaggedForLastStatsFetch(ctx context.Context) ([]game.ID, error) {
	builder := qb.Select("id").From("games").
		Where(qb.Expr("pending_final_stats_pulls > ?", 0)).
		OrderBy("id")
	return r.selectIDs(ctx, "games flagged for last stats fetch", builder)
}

func (r *GameRepository) UpdateState(ctx context.Context, gameID game.ID, state game.State) error {
	return r.patch(ctx, gameID, "state", string(state))
}

func (r *GameRepository) SetHasGameData(ctx context.Context, gameID game.ID, hasGameData bool) error {
	return r.patch(ctx, gameID, "has_game_data", hasGameData)
}

func (r *GameRepository) SetPendingFinalStatsPulls(ctx context.Context, gameID game.ID, pulls int) error {
	return r.patch(ctx, gameID, "pending_final_stats_pulls", max(pulls, 0))
}

func (r *GameRepository) patch(ctx context.Context, gameID game.ID, column string, value any) error {
	query, args, err := qb.Update("games").
		Set(column, value).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", string(gameID))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game %s query: %w", column, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game %s game=%s: %w", column, gameID, err)
	}
	return requireAffected(result, "game", gameID)
}

func (r *GameRepository) selectIDs(ctx context.Context, label string, builder *qb.SelectBuilder) ([]game.ID, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", label, err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", label, err)
	}

	out := make([]game.ID, 0, len(ids))
	for _, id := range ids {
		out = append(out, game.ID(id))
	}
	return out, nil
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:                     game.ID(row.ID),
		State:                  game.State(row.State),
		Number:                 row.Number,
		MatchID:                match.ID(row.MatchID),
		HasGameData:            row.HasGameData,
		PendingFinalStatsPulls: row.PendingFinalStatsPulls,
	}
}
