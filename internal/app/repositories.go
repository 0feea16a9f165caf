package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/esports-sync/internal/config"
	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/esports-sync/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/esports-sync/internal/platform/cache"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

type repositories struct {
	league      league.Repository
	tournament  tournament.Repository
	team        team.Repository
	player      player.Repository
	match       match.Repository
	game        game.Repository
	gameData    gamedata.Repository
	syncCursor  synccursor.Repository
	jobDispatch jobscheduler.Repository
}

// buildRepositories selects PostgreSQL when DB_URL is set and the in-memory
// store otherwise. Read-heavy repositories get the TTL cache in front.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var repos repositories
	var db *sqlx.DB

	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory store")
		store := memory.NewStore()
		repos = repositories{
			league:      memory.NewLeagueRepository(store),
			tournament:  memory.NewTournamentRepository(store),
			team:        memory.NewTeamRepository(store),
			player:      memory.NewPlayerRepository(store),
			match:       memory.NewMatchRepository(store),
			game:        memory.NewGameRepository(store),
			gameData:    memory.NewGameDataRepository(store),
			syncCursor:  memory.NewSyncCursorRepository(store),
			jobDispatch: memory.NewJobDispatchRepository(store),
		}
	} else {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("connected to postgres", "db_name", dbNameFromURL(cfg.DBURL))
		repos = repositories{
			league:      postgres.NewLeagueRepository(db),
			tournament:  postgres.NewTournamentRepository(db),
			team:        postgres.NewTeamRepository(db),
			player:      postgres.NewPlayerRepository(db),
			match:       postgres.NewMatchRepository(db),
			game:        postgres.NewGameRepository(db),
			gameData:    postgres.NewGameDataRepository(db),
			syncCursor:  postgres.NewSyncCursorRepository(db),
			jobDispatch: postgres.NewJobDispatchRepository(db),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.league = cacherepo.NewLeagueRepository(repos.league, store)
		repos.tournament = cacherepo.NewTournamentRepository(repos.tournament, store)
		repos.gameData = cacherepo.NewGameDataRepository(repos.gameData, store)
	}

	return repos, db, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := withApplicationName(cfg.DBURL, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
