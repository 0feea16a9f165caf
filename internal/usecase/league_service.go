package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
)

// TournamentView is a stored tournament with its status derived at read time.
type TournamentView struct {
	tournament.Tournament
	Status tournament.Status
}

type LeagueService struct {
	leagueRepo     league.Repository
	tournamentRepo tournament.Repository
	now            func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, tournamentRepo tournament.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo:     leagueRepo,
		tournamentRepo: tournamentRepo,
		now:            time.Now,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) ListTournamentsByLeague(ctx context.Context, leagueID string) ([]TournamentView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTournamentsByLeague")
	defer span.End()

	id, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	items, err := s.tournamentRepo.ListByLeague(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tournaments by league: %w", err)
	}

	now := s.now()
	out := make([]TournamentView, 0, len(items))
	for _, item := range items {
		out = append(out, TournamentView{Tournament: item, Status: item.Status(now)})
	}
	return out, nil
}

// SetFantasyAvailable is the operator switch for a league. Sync jobs never
// touch this flag.
func (s *LeagueService) SetFantasyAvailable(ctx context.Context, leagueID string, available bool) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.SetFantasyAvailable")
	defer span.End()

	id, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return league.League{}, err
	}
	if err := s.leagueRepo.SetFantasyAvailable(ctx, id, available); err != nil {
		return league.League{}, fmt.Errorf("set fantasy available: %w", err)
	}

	updated, _, err := s.leagueRepo.GetByID(ctx, id)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	return updated, nil
}

func (s *LeagueService) requireLeague(ctx context.Context, leagueID string) (league.ID, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, league.ID(leagueID))
	if err != nil {
		return "", fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return league.ID(leagueID), nil
}
