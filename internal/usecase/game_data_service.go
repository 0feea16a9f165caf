package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type fetchOutcome int

const (
	fetchStored fetchOutcome = iota
	fetchDowngraded
	fetchSkipped
)

type GameDataResult struct {
	Selected   int `json:"selected"`
	Stored     int `json:"stored"`
	Rows       int `json:"rows"`
	Downgraded int `json:"downgraded"`
	Skipped    int `json:"skipped"`
	FinalPulls int `json:"final_pulls"`
}

// GameDataService fills player metadata and stats for games that have data,
// and stops polling games the provider has nothing for.
type GameDataService struct {
	feed         EsportsFeed
	gameRepo     game.Repository
	gameDataRepo gamedata.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewGameDataService(
	feed EsportsFeed,
	gameRepo game.Repository,
	gameDataRepo gamedata.Repository,
	logger *logging.Logger,
) *GameDataService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameDataService{
		feed:         feed,
		gameRepo:     gameRepo,
		gameDataRepo: gameDataRepo,
		logger:       logger.Named("game_data"),
		now:          time.Now,
	}
}

// FetchPlayerMetadata re-fetches the full participant mapping of every game
// whose metadata row count is not complete.
func (s *GameDataService) FetchPlayerMetadata(ctx context.Context) (GameDataResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDataService.FetchPlayerMetadata")
	defer span.End()

	gameIDs, err := s.gameRepo.ListIDsWithoutPlayerMetadata(ctx)
	if err != nil {
		return GameDataResult{}, fmt.Errorf("list games without player metadata: %w", err)
	}

	result := GameDataResult{Selected: len(gameIDs)}
	at := s.now()
	for _, gameID := range gameIDs {
		rows, err := s.feed.GetPlayerMetadataForGame(ctx, gameID, at)
		outcome, err := s.handle(ctx, gameID, "metadata", len(rows), err, &result)
		if err != nil {
			return result, err
		}
		if outcome != fetchStored {
			continue
		}
		if err := s.gameDataRepo.UpsertMetadata(ctx, rows); err != nil {
			return result, fmt.Errorf("upsert player metadata game=%s: %w", gameID, err)
		}
	}

	span.SetAttributes(attribute.Int("game_data.selected", result.Selected), attribute.Int("game_data.rows", result.Rows))
	s.logger.InfoContext(ctx, "player metadata fetched",
		"selected", result.Selected,
		"stored", result.Stored,
		"rows", result.Rows,
		"downgraded", result.Downgraded,
		"skipped", result.Skipped,
	)
	return result, nil
}

// FetchPlayerStats runs two passes: the normal selection, then every game
// still owed a final pull after completing. A final pull decrements the
// owed count even when the game was also in the first pass, but a skipped
// malformed payload leaves it owed.
func (s *GameDataService) FetchPlayerStats(ctx context.Context) (GameDataResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDataService.FetchPlayerStats")
	defer span.End()

	var result GameDataResult
	at := s.now()

	gameIDs, err := s.gameRepo.ListIDsToFetchPlayerStatsFor(ctx)
	if err != nil {
		return result, fmt.Errorf("list games to fetch player stats for: %w", err)
	}
	result.Selected += len(gameIDs)
	for _, gameID := range gameIDs {
		if _, err := s.pullStats(ctx, gameID, at, &result); err != nil {
			return result, err
		}
	}

	flagged, err := s.gameRepo.ListIDsFlaggedForLastStatsFetch(ctx)
	if err != nil {
		return result, fmt.Errorf("list games flagged for last stats fetch: %w", err)
	}
	if len(flagged) > 0 {
		games, err := s.gameRepo.ListByIDs(ctx, flagged)
		if err != nil {
			return result, fmt.Errorf("load games flagged for last stats fetch: %w", err)
		}
		result.Selected += len(games)
		for _, item := range games {
			if item.HasGameData {
				outcome, err := s.pullStats(ctx, item.ID, at, &result)
				if err != nil {
					return result, err
				}
				if outcome == fetchSkipped {
					continue
				}
			}
			if err := s.gameRepo.SetPendingFinalStatsPulls(ctx, item.ID, item.PendingFinalStatsPulls-1); err != nil {
				return result, fmt.Errorf("clear final stats pull game=%s: %w", item.ID, err)
			}
			result.FinalPulls++
		}
	}

	span.SetAttributes(attribute.Int("game_data.selected", result.Selected), attribute.Int("game_data.rows", result.Rows))
	s.logger.InfoContext(ctx, "player stats fetched",
		"selected", result.Selected,
		"stored", result.Stored,
		"rows", result.Rows,
		"downgraded", result.Downgraded,
		"skipped", result.Skipped,
		"final_pulls", result.FinalPulls,
	)
	return result, nil
}

func (s *GameDataService) pullStats(ctx context.Context, gameID game.ID, at time.Time, result *GameDataResult) (fetchOutcome, error) {
	rows, err := s.feed.GetPlayerStatsForGame(ctx, gameID, at)
	outcome, err := s.handle(ctx, gameID, "stats", len(rows), err, result)
	if err != nil || outcome != fetchStored {
		return outcome, err
	}
	if err := s.gameDataRepo.UpsertStats(ctx, rows); err != nil {
		return outcome, fmt.Errorf("upsert player stats game=%s: %w", gameID, err)
	}
	return outcome, nil
}

// handle classifies one per-game fetch. Only fetchStored rows are written. A malformed payload skips the game for this run; an empty answer
// turns has_game_data off for good; anything else aborts the run.
func (s *GameDataService) handle(ctx context.Context, gameID game.ID, kind string, rows int, fetchErr error, result *GameDataResult) (fetchOutcome, error) {
	switch {
	case errors.Is(fetchErr, ErrMalformedPayload):
		result.Skipped++
		s.logger.WarnContext(ctx, "skip game with malformed payload", "game_id", gameID, "kind", kind, "error", fetchErr)
		return fetchSkipped, nil
	case fetchErr != nil:
		return fetchSkipped, fmt.Errorf("fetch player %s game=%s: %w", kind, gameID, fetchErr)
	case rows == 0:
		if err := s.gameRepo.SetHasGameData(ctx, gameID, false); err != nil {
			return fetchSkipped, fmt.Errorf("mark game=%s without data: %w", gameID, err)
		}
		result.Downgraded++
		s.logger.InfoContext(ctx, "game has no player data, excluding it from polling", "game_id", gameID, "kind", kind)
		return fetchDowngraded, nil
	default:
		result.Stored++
		result.Rows += rows
		return fetchStored, nil
	}
}
