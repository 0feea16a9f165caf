package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) error {
	items = lastByKey(items, func(item team.Team) team.ID { return item.ID })
	for _, batch := range chunks(items, maxRowsPerInsert) {
		models := make([]teamInsertModel, 0, len(batch))
		for _, item := range batch {
			models = append(models, teamInsertModel{
				ID:               string(item.ID),
				Slug:             item.Slug,
				Name:             item.Name,
				Code:             item.Code,
				Image:            item.Image,
				AlternativeImage: item.AlternativeImage,
				HomeLeague:       item.HomeLeague,
			})
		}

		query, args, err := qb.InsertModels("teams", models, qb.OnConflict("id").
			Update("slug", "name", "code", "image", "alternative_image", "home_league").
			Touch("updated_at"))
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID team.ID) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("id", string(teamID))).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return team.Team{
		ID:               team.ID(row.ID),
		Slug:             row.Slug,
		Name:             row.Name,
		Code:             row.Code,
		Image:            row.Image,
		AlternativeImage: row.AlternativeImage,
		HomeLeague:       row.HomeLeague,
	}, true, nil
}
