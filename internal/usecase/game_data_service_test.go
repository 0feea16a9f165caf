package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type gameDataFixture struct {
	feed     *feedMock
	games    *memory.GameRepository
	gameData *memory.GameDataRepository
	service  *GameDataService
}

func newGameDataFixture(t *testing.T, games ...game.Game) gameDataFixture {
	t.Helper()

	ctx := context.Background()
	store := memory.NewStore()
	matchRepo := memory.NewMatchRepository(store)
	gameRepo := memory.NewGameRepository(store)
	seedMatches(t, matchRepo, gameSyncNow.Add(-time.Hour), "m-1")

	for i := range games {
		games[i].MatchID = "m-1"
	}
	if err := gameRepo.UpsertMany(ctx, games); err != nil {
		t.Fatalf("seed games: %v", err)
	}

	feed := newFeedMock(t)
	gameDataRepo := memory.NewGameDataRepository(store)
	service := NewGameDataService(feed, gameRepo, gameDataRepo, logging.NewNop())
	service.now = func() time.Time { return gameSyncNow }

	return gameDataFixture{feed: feed, games: gameRepo, gameData: gameDataRepo, service: service}
}

func metadataRows(gameID game.ID, n int) []gamedata.Metadata {
	rows := make([]gamedata.Metadata, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, gamedata.Metadata{
			GameID:        gameID,
			ParticipantID: i,
			PlayerID:      player.ID(fmt.Sprintf("p-%d", i)),
			ChampionID:    "Ahri",
		})
	}
	return rows
}

func statsRows(gameID game.ID, n int) []gamedata.Stats {
	rows := make([]gamedata.Stats, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, gamedata.Stats{GameID: gameID, ParticipantID: i, Kills: i})
	}
	return rows
}

func TestGameDataService_FetchPlayerMetadataStoresAndDowngrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newGameDataFixture(t,
		game.Game{ID: "g-full", State: game.StateCompleted, Number: 1},
		game.Game{ID: "g-empty", State: game.StateInProgress, Number: 2},
	)

	f.feed.On("GetPlayerMetadataForGame", mock.Anything, game.ID("g-full"), gameSyncNow).Return(metadataRows("g-full", 10), nil).Once()
	f.feed.On("GetPlayerMetadataForGame", mock.Anything, game.ID("g-empty"), gameSyncNow).Return([]gamedata.Metadata{}, nil).Once()

	result, err := f.service.FetchPlayerMetadata(ctx)
	if err != nil {
		t.Fatalf("fetch player metadata: %v", err)
	}
	if result.Stored != 1 || result.Rows != 10 || result.Downgraded != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	empty, _, _ := f.games.GetByID(ctx, "g-empty")
	if empty.HasGameData {
		t.Fatalf("expected game without data to be downgraded")
	}

	// Neither game is selected again: one is complete, the other excluded.
	again, err := f.service.FetchPlayerMetadata(ctx)
	if err != nil {
		t.Fatalf("second metadata fetch: %v", err)
	}
	if again.Selected != 0 {
		t.Fatalf("unexpected reselection: got=%d want=%d", again.Selected, 0)
	}
}

func TestGameDataService_DowngradeSurvivesRediscovery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newGameDataFixture(t, game.Game{ID: "g-1", State: game.StateInProgress, Number: 1})

	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-1"), gameSyncNow).Return([]gamedata.Stats{}, nil).Once()

	if _, err := f.service.FetchPlayerStats(ctx); err != nil {
		t.Fatalf("fetch player stats: %v", err)
	}
	if err := f.games.UpsertMany(ctx, []game.Game{{ID: "g-1", MatchID: "m-1", State: game.StateCompleted, Number: 1}}); err != nil {
		t.Fatalf("re-upsert game: %v", err)
	}

	stored, _, _ := f.games.GetByID(ctx, "g-1")
	if stored.HasGameData {
		t.Fatalf("has_game_data must stay false after a re-upsert")
	}
	result, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("second stats fetch: %v", err)
	}
	if result.Selected != 0 {
		t.Fatalf("downgraded game must not be polled: selected=%d", result.Selected)
	}
}

func TestGameDataService_FetchPlayerStatsHonoursFinalPulls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newGameDataFixture(t, game.Game{ID: "g-1", State: game.StateCompleted, Number: 1})
	if err := f.games.SetPendingFinalStatsPulls(ctx, "g-1", 1); err != nil {
		t.Fatalf("flag final pull: %v", err)
	}

	// Pass one selects the game for its missing rows, pass two for the
	// final pull. Both pull stats.
	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-1"), gameSyncNow).Return(statsRows("g-1", 10), nil).Twice()

	result, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("fetch player stats: %v", err)
	}
	if result.FinalPulls != 1 {
		t.Fatalf("unexpected final pulls: got=%d want=%d", result.FinalPulls, 1)
	}

	stored, _, _ := f.games.GetByID(ctx, "g-1")
	if stored.LastStatsFetch() {
		t.Fatalf("final stats flag must be cleared after the pull")
	}

	// Complete and unflagged: nothing left to do.
	again, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("second stats fetch: %v", err)
	}
	if again.Selected != 0 {
		t.Fatalf("unexpected selection after final pull: got=%d", again.Selected)
	}
}

func TestGameDataService_MalformedFinalPullStaysOwed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newGameDataFixture(t, game.Game{ID: "g-1", State: game.StateCompleted, Number: 1})
	if err := f.games.SetPendingFinalStatsPulls(ctx, "g-1", 1); err != nil {
		t.Fatalf("flag final pull: %v", err)
	}

	malformed := fmt.Errorf("%w: decode feed payload", ErrMalformedPayload)
	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-1"), gameSyncNow).Return(nil, malformed).Twice()

	result, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("fetch player stats: %v", err)
	}
	if result.FinalPulls != 0 {
		t.Fatalf("unexpected final pulls: got=%d want=%d", result.FinalPulls, 0)
	}
	owed, _, _ := f.games.GetByID(ctx, "g-1")
	if owed.PendingFinalStatsPulls != 1 {
		t.Fatalf("skipped pull must stay owed: got=%d want=%d", owed.PendingFinalStatsPulls, 1)
	}

	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-1"), gameSyncNow).Return(statsRows("g-1", 10), nil).Twice()
	again, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("second stats fetch: %v", err)
	}
	if again.FinalPulls != 1 {
		t.Fatalf("unexpected final pulls on retry: got=%d want=%d", again.FinalPulls, 1)
	}
	cleared, _, _ := f.games.GetByID(ctx, "g-1")
	if cleared.LastStatsFetch() {
		t.Fatalf("final stats flag must be cleared after a stored pull")
	}
}

func TestGameDataService_MalformedPayloadSkipsOnlyThatGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newGameDataFixture(t,
		game.Game{ID: "g-bad", State: game.StateInProgress, Number: 1},
		game.Game{ID: "g-good", State: game.StateInProgress, Number: 2},
	)

	malformed := fmt.Errorf("%w: decode feed payload", ErrMalformedPayload)
	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-bad"), gameSyncNow).Return(nil, malformed).Once()
	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-good"), gameSyncNow).Return(statsRows("g-good", 10), nil).Once()

	result, err := f.service.FetchPlayerStats(ctx)
	if err != nil {
		t.Fatalf("fetch player stats: %v", err)
	}
	if result.Skipped != 1 || result.Stored != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	bad, _, _ := f.games.GetByID(ctx, "g-bad")
	if !bad.HasGameData {
		t.Fatalf("a malformed payload must not downgrade the game")
	}
}

func TestGameDataService_TransportErrorAbortsRun(t *testing.T) {
	t.Parallel()

	f := newGameDataFixture(t, game.Game{ID: "g-1", State: game.StateInProgress, Number: 1})
	boom := errors.New("connection reset")
	f.feed.On("GetPlayerStatsForGame", mock.Anything, game.ID("g-1"), gameSyncNow).Return(nil, boom).Once()

	if _, err := f.service.FetchPlayerStats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
