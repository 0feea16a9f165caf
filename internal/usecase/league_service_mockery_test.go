package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
	leaguemock "github.com/riskibarqy/esports-sync/internal/mocks/domain/league"
	"github.com/stretchr/testify/mock"
)

func TestLeagueService_ListTournamentsByLeague_DerivesStatusUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	tournamentRepo := memory.NewTournamentRepository(memory.NewStore())

	day := func(m time.Month, d int) time.Time { return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC) }
	if err := tournamentRepo.UpsertMany(ctx, []tournament.Tournament{
		{ID: "lck-spring", LeagueID: "lck", StartDate: day(time.January, 10), EndDate: day(time.April, 5)},
		{ID: "lck-summer", LeagueID: "lck", StartDate: day(time.June, 1), EndDate: day(time.August, 30)},
		{ID: "lck-msi", LeagueID: "lck", StartDate: day(time.May, 1), EndDate: day(time.May, 20)},
	}); err != nil {
		t.Fatalf("seed tournaments: %v", err)
	}

	service := NewLeagueService(leagueRepo, tournamentRepo)
	service.now = func() time.Time { return day(time.May, 20).Add(23 * time.Hour) }

	leagueRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v == ctx }), league.ID("lck")).
		Return(league.League{ID: "lck"}, true, nil).
		Once()

	got, err := service.ListTournamentsByLeague(ctx, "lck")
	if err != nil {
		t.Fatalf("list tournaments by league: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected tournament count: got=%d want=%d", len(got), 3)
	}

	want := map[tournament.ID]tournament.Status{
		"lck-spring": tournament.StatusCompleted,
		"lck-msi":    tournament.StatusActive,
		"lck-summer": tournament.StatusUpcoming,
	}
	for _, item := range got {
		if item.Status != want[item.ID] {
			t.Fatalf("unexpected status for %s: got=%s want=%s", item.ID, item.Status, want[item.ID])
		}
	}
}

func TestLeagueService_ListTournamentsByLeague_LeagueNotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	service := NewLeagueService(leagueRepo, memory.NewTournamentRepository(memory.NewStore()))

	leagueRepo.
		On("GetByID", mock.Anything, league.ID("missing")).
		Return(league.League{}, false, nil).
		Once()

	_, err := service.ListTournamentsByLeague(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeagueService_SetFantasyAvailableUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	leagueRepo := leaguemock.NewRepository(t)
	service := NewLeagueService(leagueRepo, memory.NewTournamentRepository(memory.NewStore()))

	leagueRepo.On("GetByID", mock.Anything, league.ID("lec")).Return(league.League{ID: "lec"}, true, nil).Once()
	leagueRepo.On("SetFantasyAvailable", mock.Anything, league.ID("lec"), true).Return(nil).Once()
	leagueRepo.On("GetByID", mock.Anything, league.ID("lec")).Return(league.League{ID: "lec", FantasyAvailable: true}, true, nil).Once()

	got, err := service.SetFantasyAvailable(ctx, "lec", true)
	if err != nil {
		t.Fatalf("set fantasy available: %v", err)
	}
	if !got.FantasyAvailable {
		t.Fatalf("expected league to be returned with fantasy available")
	}
}

func TestLeagueService_SetFantasyAvailableRejectsBlankID(t *testing.T) {
	t.Parallel()

	service := NewLeagueService(leaguemock.NewRepository(t), memory.NewTournamentRepository(memory.NewStore()))
	if _, err := service.SetFantasyAvailable(context.Background(), "  ", true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
