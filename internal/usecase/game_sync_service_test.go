package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
	gamemock "github.com/riskibarqy/esports-sync/internal/mocks/domain/game"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var gameSyncNow = time.Date(2026, time.April, 10, 12, 0, 0, 0, time.UTC)

func seedMatches(t *testing.T, repo match.Repository, start time.Time, ids ...string) {
	t.Helper()

	items := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		items = append(items, match.Match{ID: match.ID(id), StartTime: start, HasGames: true})
	}
	if err := repo.UpsertMany(context.Background(), items); err != nil {
		t.Fatalf("seed matches: %v", err)
	}
}

func TestGameSyncService_FetchGamesFromMatchIDsUpsertsOncePerBatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	matchRepo := memory.NewMatchRepository(store)
	gameRepo := gamemock.NewRepository(t)
	feed := newFeedMock(t)

	ids := make([]string, 0, 51)
	for i := range 51 {
		ids = append(ids, fmt.Sprintf("m-%03d", i))
	}
	seedMatches(t, matchRepo, gameSyncNow.Add(-time.Hour), ids...)

	feed.On("GetGamesFromEventDetails", mock.Anything, mock.Anything).
		Return([]game.Game{{ID: "g", State: game.StateUnstarted, Number: 1}}, nil).
		Times(51)

	var batchSizes []int
	gameRepo.On("UpsertMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batchSizes = append(batchSizes, len(args.Get(1).([]game.Game)))
		}).
		Return(nil).
		Times(3)

	service := NewGameSyncService(feed, matchRepo, gameRepo, GameSyncConfig{}, logging.NewNop())
	service.now = func() time.Time { return gameSyncNow }

	result, err := service.FetchGamesFromMatchIDs(ctx)
	if err != nil {
		t.Fatalf("fetch games from match ids: %v", err)
	}
	if result.Batches != 3 {
		t.Fatalf("unexpected batches: got=%d want=%d", result.Batches, 3)
	}
	want := []int{25, 25, 1}
	for i, size := range want {
		if batchSizes[i] != size {
			t.Fatalf("unexpected batch size at %d: got=%d want=%d", i, batchSizes[i], size)
		}
	}
}

func TestGameSyncService_FetchGamesFromMatchIDsDisablesPastEmptyMatches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	matchRepo := memory.NewMatchRepository(store)
	gameRepo := memory.NewGameRepository(store)
	feed := newFeedMock(t)

	seedMatches(t, matchRepo, gameSyncNow.Add(-2*time.Hour), "m-bye", "m-played")
	seedMatches(t, matchRepo, gameSyncNow.Add(48*time.Hour), "m-future")

	feed.On("GetGamesFromEventDetails", mock.Anything, match.ID("m-bye")).Return([]game.Game{}, nil).Once()
	feed.On("GetGamesFromEventDetails", mock.Anything, match.ID("m-future")).Return([]game.Game{}, nil).Once()
	feed.On("GetGamesFromEventDetails", mock.Anything, match.ID("m-played")).Return([]game.Game{
		{ID: "g-1", State: game.StateCompleted, Number: 1},
		{ID: "g-2", State: game.StateInProgress, Number: 2},
	}, nil).Once()

	service := NewGameSyncService(feed, matchRepo, gameRepo, GameSyncConfig{}, logging.NewNop())
	service.now = func() time.Time { return gameSyncNow }

	result, err := service.FetchGamesFromMatchIDs(ctx)
	if err != nil {
		t.Fatalf("fetch games from match ids: %v", err)
	}
	if result.Games != 2 || result.MatchesNoGames != 2 || result.MatchesDisabled != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	bye, _, _ := matchRepo.GetByID(ctx, "m-bye")
	if bye.HasGames {
		t.Fatalf("expected past match without games to be disabled")
	}
	future, _, _ := matchRepo.GetByID(ctx, "m-future")
	if !future.HasGames {
		t.Fatalf("expected future match to stay eligible for discovery")
	}

	stored, ok, _ := gameRepo.GetByID(ctx, "g-2")
	if !ok || stored.MatchID != "m-played" {
		t.Fatalf("unexpected stored game: ok=%v game=%+v", ok, stored)
	}

	left, _ := matchRepo.ListIDsWithoutGames(ctx)
	if len(left) != 1 || left[0] != "m-future" {
		t.Fatalf("unexpected matches left for discovery: %v", left)
	}
}

func TestGameSyncService_UpdateGameStatesOnlyMovesForward(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	matchRepo := memory.NewMatchRepository(store)
	gameRepo := memory.NewGameRepository(store)
	feed := newFeedMock(t)

	seedMatches(t, matchRepo, gameSyncNow.Add(-time.Hour), "m-1")
	if err := gameRepo.UpsertMany(ctx, []game.Game{
		{ID: "g-1", MatchID: "m-1", Number: 1, State: game.StateInProgress},
		{ID: "g-2", MatchID: "m-1", Number: 2, State: game.StateInProgress},
		{ID: "g-3", MatchID: "m-1", Number: 3, State: game.StateUnstarted},
	}); err != nil {
		t.Fatalf("seed games: %v", err)
	}

	feed.On("GetGames", mock.Anything, []game.ID{"g-1", "g-2", "g-3"}).Return([]GameState{
		{ID: "g-1", State: game.StateCompleted},
		{ID: "g-2", State: game.StateUnstarted},
		{ID: "g-3", State: game.StateUnneeded},
	}, nil).Once()

	service := NewGameSyncService(feed, matchRepo, gameRepo, GameSyncConfig{FinalStatsPulls: 2}, logging.NewNop())
	service.now = func() time.Time { return gameSyncNow }

	result, err := service.UpdateGameStates(ctx)
	if err != nil {
		t.Fatalf("update game states: %v", err)
	}
	if result.Updated != 2 || result.Completed != 1 || result.Ignored != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	completed, _, _ := gameRepo.GetByID(ctx, "g-1")
	if completed.State != game.StateCompleted {
		t.Fatalf("unexpected state: got=%s want=%s", completed.State, game.StateCompleted)
	}
	if completed.PendingFinalStatsPulls != 2 {
		t.Fatalf("unexpected pending pulls: got=%d want=%d", completed.PendingFinalStatsPulls, 2)
	}
	regressed, _, _ := gameRepo.GetByID(ctx, "g-2")
	if regressed.State != game.StateInProgress {
		t.Fatalf("state must not move backwards: got=%s", regressed.State)
	}
	unneeded, _, _ := gameRepo.GetByID(ctx, "g-3")
	if unneeded.LastStatsFetch() {
		t.Fatalf("unneeded games are never flagged for a final pull")
	}
}

func TestGameSyncService_UpdateGameStatesSkipsFeedWhenNothingToCheck(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	service := NewGameSyncService(newFeedMock(t), memory.NewMatchRepository(store), memory.NewGameRepository(store), GameSyncConfig{}, logging.NewNop())

	result, err := service.UpdateGameStates(context.Background())
	if err != nil {
		t.Fatalf("update game states: %v", err)
	}
	if result.Checked != 0 {
		t.Fatalf("unexpected checked count: got=%d want=%d", result.Checked, 0)
	}
}
