package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	"github.com/stretchr/testify/mock"
)

// feedMock is a testify mock of EsportsFeed. It lives next to the tests
// because a generated package importing usecase would be an import cycle.
type feedMock struct {
	mock.Mock
}

func newFeedMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *feedMock {
	m := &feedMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *feedMock) GetLeagues(ctx context.Context) ([]league.League, error) {
	ret := m.Called(ctx)
	items, _ := ret.Get(0).([]league.League)
	return items, ret.Error(1)
}

func (m *feedMock) GetTeams(ctx context.Context) ([]team.Team, error) {
	ret := m.Called(ctx)
	items, _ := ret.Get(0).([]team.Team)
	return items, ret.Error(1)
}

func (m *feedMock) GetPlayers(ctx context.Context) ([]player.Player, error) {
	ret := m.Called(ctx)
	items, _ := ret.Get(0).([]player.Player)
	return items, ret.Error(1)
}

func (m *feedMock) GetTournamentsForLeague(ctx context.Context, leagueID league.ID) ([]tournament.Tournament, error) {
	ret := m.Called(ctx, leagueID)
	items, _ := ret.Get(0).([]tournament.Tournament)
	return items, ret.Error(1)
}

func (m *feedMock) GetGamesFromEventDetails(ctx context.Context, matchID match.ID) ([]game.Game, error) {
	ret := m.Called(ctx, matchID)
	items, _ := ret.Get(0).([]game.Game)
	return items, ret.Error(1)
}

func (m *feedMock) GetTournamentIDForMatch(ctx context.Context, matchID match.ID) (tournament.ID, error) {
	ret := m.Called(ctx, matchID)
	id, _ := ret.Get(0).(tournament.ID)
	return id, ret.Error(1)
}

func (m *feedMock) GetGames(ctx context.Context, gameIDs []game.ID) ([]GameState, error) {
	ret := m.Called(ctx, gameIDs)
	items, _ := ret.Get(0).([]GameState)
	return items, ret.Error(1)
}

func (m *feedMock) GetPlayerMetadataForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Metadata, error) {
	ret := m.Called(ctx, gameID, at)
	items, _ := ret.Get(0).([]gamedata.Metadata)
	return items, ret.Error(1)
}

func (m *feedMock) GetPlayerStatsForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Stats, error) {
	ret := m.Called(ctx, gameID, at)
	items, _ := ret.Get(0).([]gamedata.Stats)
	return items, ret.Error(1)
}

func (m *feedMock) GetSchedule(ctx context.Context, pageToken string) (SchedulePage, error) {
	ret := m.Called(ctx, pageToken)
	page, _ := ret.Get(0).(SchedulePage)
	return page, ret.Error(1)
}
