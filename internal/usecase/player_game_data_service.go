package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
)

const (
	defaultPlayerGameDataLimit = 50
	maxPlayerGameDataLimit     = 200
)

type PlayerGameDataQuery struct {
	GameID   string
	PlayerID string
	Limit    int
	Offset   int
}

type PlayerGameDataPage struct {
	Items  []gamedata.PlayerGameData
	Limit  int
	Offset int
}

// PlayerGameDataService serves the joined metadata and stats view. Rows are
// ordered by (game_id, participant_id) so offsets are stable across calls.
type PlayerGameDataService struct {
	repo gamedata.Repository
}

func NewPlayerGameDataService(repo gamedata.Repository) *PlayerGameDataService {
	return &PlayerGameDataService{repo: repo}
}

func (s *PlayerGameDataService) List(ctx context.Context, query PlayerGameDataQuery) (PlayerGameDataPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerGameDataService.List")
	defer span.End()

	if query.Offset < 0 {
		return PlayerGameDataPage{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	switch {
	case query.Limit < 0:
		return PlayerGameDataPage{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	case query.Limit == 0:
		query.Limit = defaultPlayerGameDataLimit
	case query.Limit > maxPlayerGameDataLimit:
		query.Limit = maxPlayerGameDataLimit
	}

	items, err := s.repo.ListPlayerGameData(ctx, gamedata.Filter{
		GameID:   game.ID(strings.TrimSpace(query.GameID)),
		PlayerID: player.ID(strings.TrimSpace(query.PlayerID)),
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
	if err != nil {
		return PlayerGameDataPage{}, fmt.Errorf("list player game data: %w", err)
	}

	return PlayerGameDataPage{Items: items, Limit: query.Limit, Offset: query.Offset}, nil
}
