package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
)

const defaultTournamentWorkers = 4

type ReferenceSyncConfig struct {
	// TournamentWorkers bounds the concurrent per-league tournament calls.
	TournamentWorkers int
}

type ReferenceSyncResult struct {
	Fetched int `json:"fetched"`
	Stored  int `json:"stored"`
	Invalid int `json:"invalid"`
}

// ReferenceSyncService mirrors the slow-moving provider catalogue: leagues,
// their tournaments, teams and players.
type ReferenceSyncService struct {
	feed           EsportsFeed
	leagueRepo     league.Repository
	tournamentRepo tournament.Repository
	teamRepo       team.Repository
	playerRepo     player.Repository
	cfg            ReferenceSyncConfig
	logger         *logging.Logger
}

func NewReferenceSyncService(
	feed EsportsFeed,
	leagueRepo league.Repository,
	tournamentRepo tournament.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	cfg ReferenceSyncConfig,
	logger *logging.Logger,
) *ReferenceSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.TournamentWorkers <= 0 {
		cfg.TournamentWorkers = defaultTournamentWorkers
	}
	return &ReferenceSyncService{
		feed:           feed,
		leagueRepo:     leagueRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		cfg:            cfg,
		logger:         logger.Named("reference_sync"),
	}
}

// FetchLeagues upserts the provider league list. The operator-owned
// fantasy_available flag is left to the repository to preserve.
func (s *ReferenceSyncService) FetchLeagues(ctx context.Context) (ReferenceSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.FetchLeagues")
	defer span.End()

	items, err := s.feed.GetLeagues(ctx)
	if err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("fetch leagues: %w", err)
	}
	valid := keepValid(ctx, s.logger, "league", items, league.League.Validate)
	if err := s.leagueRepo.UpsertMany(ctx, valid); err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("upsert leagues: %w", err)
	}

	result := ReferenceSyncResult{Fetched: len(items), Stored: len(valid), Invalid: len(items) - len(valid)}
	s.logger.InfoContext(ctx, "leagues synced", "fetched", result.Fetched, "stored", result.Stored)
	return result, nil
}

// FetchTournaments fans the per-league tournament call out over a bounded
// worker pool. Leagues that succeed are stored even when others fail; the
// failures are returned together so the run is retried.
func (s *ReferenceSyncService) FetchTournaments(ctx context.Context) (ReferenceSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.FetchTournaments")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("list leagues: %w", err)
	}
	if len(leagues) == 0 {
		return ReferenceSyncResult{}, nil
	}

	pool, err := ants.NewPool(min(s.cfg.TournamentWorkers, len(leagues)))
	if err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		workers  sync.WaitGroup
		fetched  []tournament.Tournament
		fetchErr error
	)
	for _, item := range leagues {
		leagueID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			rows, err := s.feed.GetTournamentsForLeague(ctx, leagueID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fetchErr = errors.CombineErrors(fetchErr, fmt.Errorf("fetch tournaments league=%s: %w", leagueID, err))
				return
			}
			for _, row := range rows {
				row.LeagueID = leagueID
				fetched = append(fetched, row)
			}
		}); err != nil {
			workers.Done()
			return ReferenceSyncResult{}, fmt.Errorf("submit tournament fetch to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(fetched, func(i, j int) bool { return fetched[i].ID < fetched[j].ID })
	valid := keepValid(ctx, s.logger, "tournament", fetched, tournament.Tournament.Validate)
	if err := s.tournamentRepo.UpsertMany(ctx, valid); err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("upsert tournaments: %w", err)
	}

	result := ReferenceSyncResult{Fetched: len(fetched), Stored: len(valid), Invalid: len(fetched) - len(valid)}
	s.logger.InfoContext(ctx, "tournaments synced", "leagues", len(leagues), "fetched", result.Fetched, "stored", result.Stored)
	return result, fetchErr
}

func (s *ReferenceSyncService) FetchTeams(ctx context.Context) (ReferenceSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.FetchTeams")
	defer span.End()

	items, err := s.feed.GetTeams(ctx)
	if err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("fetch teams: %w", err)
	}
	valid := keepValid(ctx, s.logger, "team", items, team.Team.Validate)
	if err := s.teamRepo.UpsertMany(ctx, valid); err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("upsert teams: %w", err)
	}

	result := ReferenceSyncResult{Fetched: len(items), Stored: len(valid), Invalid: len(items) - len(valid)}
	s.logger.InfoContext(ctx, "teams synced", "fetched", result.Fetched, "stored", result.Stored)
	return result, nil
}

func (s *ReferenceSyncService) FetchPlayers(ctx context.Context) (ReferenceSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceSyncService.FetchPlayers")
	defer span.End()

	items, err := s.feed.GetPlayers(ctx)
	if err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("fetch players: %w", err)
	}
	valid := keepValid(ctx, s.logger, "player", items, player.Player.Validate)
	if err := s.playerRepo.UpsertMany(ctx, valid); err != nil {
		return ReferenceSyncResult{}, fmt.Errorf("upsert players: %w", err)
	}

	result := ReferenceSyncResult{Fetched: len(items), Stored: len(valid), Invalid: len(items) - len(valid)}
	s.logger.InfoContext(ctx, "players synced", "fetched", result.Fetched, "stored", result.Stored)
	return result, nil
}

// keepValid drops records that fail validation so one bad record does not
// block the rest of the batch.
func keepValid[T any](ctx context.Context, logger *logging.Logger, kind string, items []T, validate func(T) error) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if err := validate(item); err != nil {
			logger.WarnContext(ctx, "skip invalid provider record", "kind", kind, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}
