package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultDiscoveryBatchSize = 25
	defaultFinalStatsPulls    = 1
)

type GameSyncConfig struct {
	// DiscoveryBatchSize caps the event-detail calls between two bulk upserts.
	DiscoveryBatchSize int
	// FinalStatsPulls is the number of stats pulls owed after a game completes.
	FinalStatsPulls int
}

type DiscoveryResult struct {
	Matches         int `json:"matches"`
	Batches         int `json:"batches"`
	Games           int `json:"games"`
	MatchesNoGames  int `json:"matches_without_games"`
	MatchesDisabled int `json:"matches_disabled"`
}

type StatePollResult struct {
	Checked   int `json:"checked"`
	Updated   int `json:"updated"`
	Completed int `json:"completed"`
	Ignored   int `json:"ignored"`
}

// GameSyncService discovers games for matches that have none and polls the
// state of games that are not settled yet.
type GameSyncService struct {
	feed      EsportsFeed
	matchRepo match.Repository
	gameRepo  game.Repository
	cfg       GameSyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewGameSyncService(
	feed EsportsFeed,
	matchRepo match.Repository,
	gameRepo game.Repository,
	cfg GameSyncConfig,
	logger *logging.Logger,
) *GameSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DiscoveryBatchSize <= 0 {
		cfg.DiscoveryBatchSize = defaultDiscoveryBatchSize
	}
	if cfg.FinalStatsPulls <= 0 {
		cfg.FinalStatsPulls = defaultFinalStatsPulls
	}

	return &GameSyncService{
		feed:      feed,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		cfg:       cfg,
		logger:    logger.Named("game_sync"),
		now:       time.Now,
	}
}

// FetchGamesFromMatchIDs looks up the games of every match expected to have
// some but with no game rows yet. Each batch ends in one bulk upsert.
func (s *GameSyncService) FetchGamesFromMatchIDs(ctx context.Context) (DiscoveryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSyncService.FetchGamesFromMatchIDs")
	defer span.End()

	matchIDs, err := s.matchRepo.ListIDsWithoutGames(ctx)
	if err != nil {
		return DiscoveryResult{}, fmt.Errorf("list matches without games: %w", err)
	}

	result := DiscoveryResult{Matches: len(matchIDs)}
	for start := 0; start < len(matchIDs); start += s.cfg.DiscoveryBatchSize {
		end := min(start+s.cfg.DiscoveryBatchSize, len(matchIDs))
		if err := s.discoverBatch(ctx, matchIDs[start:end], &result); err != nil {
			return result, err
		}
		result.Batches++
	}

	span.SetAttributes(attribute.Int("discovery.matches", result.Matches), attribute.Int("discovery.games", result.Games))
	s.logger.InfoContext(ctx, "game discovery finished",
		"matches", result.Matches,
		"batches", result.Batches,
		"games", result.Games,
		"matches_without_games", result.MatchesNoGames,
		"matches_disabled", result.MatchesDisabled,
	)
	return result, nil
}

func (s *GameSyncService) discoverBatch(ctx context.Context, matchIDs []match.ID, result *DiscoveryResult) error {
	collected := make([]game.Game, 0, len(matchIDs)*3)
	empty := make([]match.ID, 0)
	for _, matchID := range matchIDs {
		games, err := s.feed.GetGamesFromEventDetails(ctx, matchID)
		if err != nil {
			return fmt.Errorf("fetch games for match=%s: %w", matchID, err)
		}
		if len(games) == 0 {
			empty = append(empty, matchID)
			continue
		}
		for _, item := range games {
			item.MatchID = matchID
			collected = append(collected, item)
		}
	}

	if err := s.gameRepo.UpsertMany(ctx, collected); err != nil {
		return fmt.Errorf("upsert discovered games: %w", err)
	}
	result.Games += len(collected)
	result.MatchesNoGames += len(empty)

	// A match that already started and still has no games will never get
	// any, e.g. a bye. Future matches are retried on the next run.
	now := s.now()
	for _, matchID := range empty {
		item, ok, err := s.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match=%s: %w", matchID, err)
		}
		if !ok || item.StartTime.After(now) {
			continue
		}
		if err := s.matchRepo.SetHasGames(ctx, matchID, false); err != nil {
			return fmt.Errorf("disable game discovery for match=%s: %w", matchID, err)
		}
		result.MatchesDisabled++
	}
	return nil
}

// UpdateGameStates polls the provider state of every unsettled game whose
// match has started and writes back forward transitions only.
func (s *GameSyncService) UpdateGameStates(ctx context.Context) (StatePollResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSyncService.UpdateGameStates")
	defer span.End()

	gameIDs, err := s.gameRepo.ListIDsNeedingStateCheck(ctx, s.now())
	if err != nil {
		return StatePollResult{}, fmt.Errorf("list games needing state check: %w", err)
	}
	result := StatePollResult{Checked: len(gameIDs)}
	if len(gameIDs) == 0 {
		return result, nil
	}

	stored, err := s.gameRepo.ListByIDs(ctx, gameIDs)
	if err != nil {
		return result, fmt.Errorf("load games for state check: %w", err)
	}
	current := make(map[game.ID]game.State, len(stored))
	for _, item := range stored {
		current[item.ID] = item.State
	}

	remote, err := s.feed.GetGames(ctx, gameIDs)
	if err != nil {
		return result, fmt.Errorf("fetch game states: %w", err)
	}

	for _, item := range remote {
		from, ok := current[item.ID]
		if !ok || from == item.State {
			continue
		}
		if !from.CanAdvanceTo(item.State) {
			result.Ignored++
			s.logger.WarnContext(ctx, "ignore non-monotonic game state",
				"game_id", item.ID,
				"from", from,
				"to", item.State,
			)
			continue
		}

		if err := s.gameRepo.UpdateState(ctx, item.ID, item.State); err != nil {
			return result, fmt.Errorf("update state game=%s: %w", item.ID, err)
		}
		result.Updated++

		if item.State == game.StateCompleted {
			if err := s.gameRepo.SetPendingFinalStatsPulls(ctx, item.ID, s.cfg.FinalStatsPulls); err != nil {
				return result, fmt.Errorf("flag final stats pull game=%s: %w", item.ID, err)
			}
			result.Completed++
		}
	}

	span.SetAttributes(attribute.Int("state_poll.checked", result.Checked), attribute.Int("state_poll.updated", result.Updated))
	s.logger.InfoContext(ctx, "game states polled",
		"checked", result.Checked,
		"updated", result.Updated,
		"completed", result.Completed,
		"ignored", result.Ignored,
	)
	return result, nil
}
