package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type GameDataRepository struct {
	db *sqlx.DB
}

func NewGameDataRepository(db *sqlx.DB) *GameDataRepository {
	return &GameDataRepository{db: db}
}

type participantRowKey struct {
	gameID        game.ID
	participantID int
}

func (r *GameDataRepository) UpsertMetadata(ctx context.Context, items []gamedata.Metadata) error {
	items = lastByKey(items, func(item gamedata.Metadata) participantRowKey {
		return participantRowKey{gameID: item.GameID, participantID: item.ParticipantID}
	})
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]gamePlayerMetadataInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, gamePlayerMetadataInsertModel{
				GameID:        string(item.GameID),
				ParticipantID: item.ParticipantID,
				PlayerID:      string(item.PlayerID),
				TeamID:        string(item.TeamID),
				Side:          string(item.Side),
				SummonerName:  item.SummonerName,
				ChampionID:    item.ChampionID,
				Role:          item.Role,
			})
		}

		query, args, err := qb.InsertModels("game_player_metadata", models, qb.OnConflict("game_id", "participant_id").
			Update("player_id", "team_id", "side", "summoner_name", "champion_id", "role").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert game player metadata query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game player metadata: %w", err)
		}
	}
	return nil
}

func (r *GameDataRepository) UpsertStats(ctx context.Context, items []gamedata.Stats) error {
	items = lastByKey(items, func(item gamedata.Stats) participantRowKey {
		return participantRowKey{gameID: item.GameID, participantID: item.ParticipantID}
	})
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]gamePlayerStatsInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, gamePlayerStatsInsertModel{
				GameID:              string(item.GameID),
				ParticipantID:       item.ParticipantID,
				Level:               item.Level,
				Kills:               item.Kills,
				Deaths:              item.Deaths,
				Assists:             item.Assists,
				TotalGoldEarned:     item.TotalGoldEarned,
				CreepScore:          item.CreepScore,
				KillParticipation:   item.KillParticipation,
				ChampionDamageShare: item.ChampionDamageShare,
				WardsPlaced:         item.WardsPlaced,
				WardsDestroyed:      item.WardsDestroyed,
			})
		}

		query, args, err := qb.InsertModels("game_player_stats", models, qb.OnConflict("game_id", "participant_id").
			Update("level", "kills", "deaths", "assists", "total_gold_earned", "creep_score", "kill_participation", "champion_damage_share", "wards_placed", "wards_destroyed").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert game player stats query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game player stats: %w", err)
		}
	}
	return nil
}

func (r *GameDataRepository) ListPlayerGameData(ctx context.Context, filter gamedata.Filter) ([]gamedata.PlayerGameData, error) {
	conds := make([]qb.Condition, 0, 2)
	if filter.GameID != "" {
		conds = append(conds, qb.Eq("pm.game_id", string(filter.GameID)))
	}
	if filter.PlayerID != "" {
		conds = append(conds, qb.Eq("pm.player_id", string(filter.PlayerID)))
	}

	query, args, err := qb.Select(playerGameDataColumns...).From("game_player_metadata pm").
		Join("JOIN game_player_stats ps ON ps.game_id = pm.game_id AND ps.participant_id = pm.participant_id").
		Where(conds...).
		OrderBy("pm.game_id", "pm.participant_id").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player game data query: %w", err)
	}

	var rows []playerGameDataRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player game data: %w", err)
	}

	out := make([]gamedata.PlayerGameData, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamedata.Join(
			gamedata.Metadata{
				GameID:        game.ID(row.GameID),
				ParticipantID: row.ParticipantID,
				PlayerID:      player.ID(row.PlayerID),
				TeamID:        team.ID(row.TeamID),
				Side:          gamedata.Side(row.Side),
				SummonerName:  row.SummonerName,
				ChampionID:    row.ChampionID,
				Role:          row.Role,
			},
			gamedata.Stats{
				GameID:              game.ID(row.GameID),
				ParticipantID:       row.ParticipantID,
				Level:               row.Level,
				Kills:               row.Kills,
				Deaths:              row.Deaths,
				Assists:             row.Assists,
				TotalGoldEarned:     row.TotalGoldEarned,
				CreepScore:          row.CreepScore,
				KillParticipation:   row.KillParticipation,
				ChampionDamageShare: row.ChampionDamageShare,
				WardsPlaced:         row.WardsPlaced,
				WardsDestroyed:      row.WardsDestroyed,
			},
		))
	}
	return out, nil
}
