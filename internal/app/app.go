package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/esports-sync/external/lolesports"
	"github.com/riskibarqy/esports-sync/internal/config"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
	"github.com/riskibarqy/esports-sync/internal/interfaces/httpapi"
	"github.com/riskibarqy/esports-sync/internal/observability"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/resilience"
	"github.com/riskibarqy/esports-sync/internal/platform/scheduler"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

// App holds the long-running parts of the process. Scheduler is nil when
// SCHEDULER_ENABLED=false; jobs then only run through the trigger endpoint.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler
	Runner    *usecase.JobRunnerService

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	feed := lolesports.NewClient(lolesports.ClientConfig{
		BaseURL:            cfg.FeedBaseURL,
		LiveStatsBaseURL:   cfg.FeedLiveStatsBaseURL,
		APIKey:             cfg.FeedAPIKey,
		Locale:             cfg.FeedLocale,
		Timeout:            cfg.FeedTimeout,
		RateLimitPerSecond: cfg.FeedRateLimitPerSecond,
		RateLimitBurst:     cfg.FeedRateLimitBurst,
		Logger:             logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	runner := usecase.NewJobRunnerService(
		repos.jobDispatch,
		nil,
		resilience.RetryPolicy{MaxAttempts: cfg.JobMaxAttempts, Delay: cfg.JobRetryDelay},
		logger,
	)
	jobs := usecase.SyncJobs{
		Reference: usecase.NewReferenceSyncService(
			feed,
			repos.league,
			repos.tournament,
			repos.team,
			repos.player,
			usecase.ReferenceSyncConfig{TournamentWorkers: cfg.TournamentWorkers},
			logger,
		),
		Schedule: usecase.NewScheduleSyncService(feed, repos.match, synccursor.NewStore(repos.syncCursor), logger),
		Games: usecase.NewGameSyncService(
			feed,
			repos.match,
			repos.game,
			usecase.GameSyncConfig{
				DiscoveryBatchSize: cfg.DiscoveryBatchSize,
				FinalStatsPulls:    cfg.StatsFinalPulls,
			},
			logger,
		),
		GameData: usecase.NewGameDataService(feed, repos.game, repos.gameData, logger),
	}
	if err := jobs.RegisterAll(runner); err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("register jobs: %w", err)
	}

	var sched *scheduler.Scheduler
	var jobScheduler httpapi.JobScheduler
	if cfg.SchedulerEnabled {
		sched, err = buildScheduler(cfg, runner, logger)
		if err != nil {
			closeDB(db, logger)
			return nil, err
		}
		jobScheduler = sched
	}

	handler := httpapi.NewHandler(
		usecase.NewLeagueService(repos.league, repos.tournament),
		usecase.NewPlayerGameDataService(repos.gameData),
		runner,
		jobScheduler,
		logger,
	)

	return &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		Scheduler: sched,
		Runner:    runner,
		db:        db,
		logger:    logger,
	}, nil
}

// buildScheduler gives every registered job a slot. Manual fires arrive from
// the trigger endpoint and are recorded with the manual source. Runs carry a
// job_id profiling label.
func buildScheduler(cfg config.Config, runner *usecase.JobRunnerService, logger *logging.Logger) (*scheduler.Scheduler, error) {
	sched := scheduler.New(logger)
	for _, jobID := range runner.JobIDs() {
		trigger, ok := cfg.JobTriggers[jobID]
		if !ok {
			return nil, fmt.Errorf("no trigger configured for job %s", jobID)
		}
		err := sched.Add(jobID, trigger, func(ctx context.Context, fire scheduler.Fire) error {
			source := jobscheduler.SourceSchedule
			if fire.Manual {
				source = jobscheduler.SourceManual
			}
			var err error
			observability.ProfileJob(ctx, fire.JobID, func(ctx context.Context) {
				err = runner.Run(ctx, fire.JobID, source)
			})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("schedule job %s: %w", jobID, err)
		}
	}
	return sched, nil
}

func (a *App) Close() {
	closeDB(a.db, a.logger)
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}
