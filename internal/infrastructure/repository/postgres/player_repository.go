package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) error {
	items = lastByKey(items, func(item player.Player) player.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]playerInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, playerInsertModel{
				ID:           string(item.ID),
				SummonerName: item.SummonerName,
				FirstName:    item.FirstName,
				LastName:     item.LastName,
				Image:        item.Image,
				Role:         item.Role,
				TeamID:       nullableString(string(item.TeamID)),
			})
		}

		query, args, err := qb.InsertModels("players", models, qb.OnConflict("id").
			Update("summoner_name", "first_name", "last_name", "image", "role", "team_id").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert players query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert players: %w", err)
		}
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID player.ID) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", string(playerID))).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return player.Player{
		ID:           player.ID(row.ID),
		SummonerName: row.SummonerName,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Image:        row.Image,
		Role:         row.Role,
		TeamID:       team.ID(stringFromNull(row.TeamID)),
	}, true, nil
}
