package lolesports

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

const gamesPerRequest = 50

var _ usecase.EsportsFeed = (*Client)(nil)

func (c *Client) GetLeagues(ctx context.Context) ([]league.League, error) {
	var payload leaguesEnvelope
	if _, err := c.doJSON(ctx, c.gatewayRequest("/getLeagues", nil), &payload); err != nil {
		return nil, fmt.Errorf("get leagues: %w", err)
	}

	out := make([]league.League, 0, len(payload.Data.Leagues))
	for _, item := range payload.Data.Leagues {
		if item.ID == "" {
			continue
		}
		out = append(out, league.League{
			ID:       league.ID(item.ID),
			Slug:     item.Slug,
			Name:     item.Name,
			Region:   item.Region,
			Image:    item.Image,
			Priority: item.Priority,
		})
	}
	return out, nil
}

func (c *Client) GetTournamentsForLeague(ctx context.Context, leagueID league.ID) ([]tournament.Tournament, error) {
	query := url.Values{}
	query.Set("leagueId", string(leagueID))

	var payload tournamentsEnvelope
	if _, err := c.doJSON(ctx, c.gatewayRequest("/getTournamentsForLeague", query), &payload); err != nil {
		return nil, fmt.Errorf("get tournaments league=%s: %w", leagueID, err)
	}

	out := make([]tournament.Tournament, 0, 8)
	for _, l := range payload.Data.Leagues {
		for _, item := range l.Tournaments {
			if item.ID == "" {
				continue
			}
			out = append(out, tournament.Tournament{
				ID:        tournament.ID(item.ID),
				Slug:      item.Slug,
				StartDate: parseDate(item.StartDate),
				EndDate:   parseDate(item.EndDate),
				LeagueID:  leagueID,
			})
		}
	}
	return out, nil
}

func (c *Client) GetTeams(ctx context.Context) ([]team.Team, error) {
	teams, err := c.fetchTeams(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		if item.ID == "" {
			continue
		}
		t := team.Team{
			ID:               team.ID(item.ID),
			Slug:             item.Slug,
			Name:             item.Name,
			Code:             item.Code,
			Image:            item.Image,
			AlternativeImage: item.AlternativeImage,
		}
		if item.HomeLeague != nil {
			t.HomeLeague = item.HomeLeague.Name
		}
		out = append(out, t)
	}
	return out, nil
}

// GetPlayers flattens the rosters embedded in the teams payload. A player
// listed on several rosters keeps the first team seen.
func (c *Client) GetPlayers(ctx context.Context) ([]player.Player, error) {
	teams, err := c.fetchTeams(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, 1024)
	out := make([]player.Player, 0, 1024)
	for _, t := range teams {
		for _, item := range t.Players {
			if item.ID == "" {
				continue
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, player.Player{
				ID:           player.ID(item.ID),
				SummonerName: item.SummonerName,
				FirstName:    item.FirstName,
				LastName:     item.LastName,
				Image:        item.Image,
				Role:         item.Role,
				TeamID:       team.ID(t.ID),
			})
		}
	}
	return out, nil
}

func (c *Client) fetchTeams(ctx context.Context) ([]teamItem, error) {
	var payload teamsEnvelope
	if _, err := c.doJSON(ctx, c.gatewayRequest("/getTeams", nil), &payload); err != nil {
		return nil, fmt.Errorf("get teams: %w", err)
	}
	return payload.Data.Teams, nil
}

// GetGamesFromEventDetails lists the games of a match. No content yields an
// empty list.
func (c *Client) GetGamesFromEventDetails(ctx context.Context, matchID match.ID) ([]game.Game, error) {
	payload, found, err := c.fetchEventDetails(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !found || payload.Data.Event == nil || payload.Data.Event.Match == nil {
		return nil, nil
	}

	items := payload.Data.Event.Match.Games
	out := make([]game.Game, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		state, err := game.ParseState(item.State)
		if err != nil {
			c.logger.WarnContext(ctx, "skip game with unknown state", "match_id", matchID, "game_id", item.ID, "state", item.State)
			continue
		}
		out = append(out, game.Game{
			ID:          game.ID(item.ID),
			State:       state,
			Number:      item.Number,
			MatchID:     matchID,
			HasGameData: true,
		})
	}
	return out, nil
}

// GetTournamentIDForMatch resolves the tournament of a schedule match. It
// returns an empty id when the provider has no details for the match.
func (c *Client) GetTournamentIDForMatch(ctx context.Context, matchID match.ID) (tournament.ID, error) {
	payload, found, err := c.fetchEventDetails(ctx, matchID)
	if err != nil {
		return "", err
	}
	if !found || payload.Data.Event == nil || payload.Data.Event.Tournament == nil {
		return "", nil
	}
	return tournament.ID(payload.Data.Event.Tournament.ID), nil
}

func (c *Client) fetchEventDetails(ctx context.Context, matchID match.ID) (eventDetailsEnvelope, bool, error) {
	query := url.Values{}
	query.Set("id", string(matchID))
	req := c.gatewayRequest("/getEventDetails", query)
	req.noContentOK = true

	var payload eventDetailsEnvelope
	found, err := c.doJSON(ctx, req, &payload)
	if err != nil {
		return eventDetailsEnvelope{}, false, fmt.Errorf("get event details match=%s: %w", matchID, err)
	}
	return payload, found, nil
}

// GetGames returns the provider state of the given games, chunked to keep
// the query string bounded.
func (c *Client) GetGames(ctx context.Context, gameIDs []game.ID) ([]usecase.GameState, error) {
	out := make([]usecase.GameState, 0, len(gameIDs))
	for start := 0; start < len(gameIDs); start += gamesPerRequest {
		end := min(start+gamesPerRequest, len(gameIDs))
		ids := make([]string, 0, end-start)
		for _, id := range gameIDs[start:end] {
			ids = append(ids, string(id))
		}

		query := url.Values{}
		query.Set("id", strings.Join(ids, ","))

		var payload gamesEnvelope
		if _, err := c.doJSON(ctx, c.gatewayRequest("/getGames", query), &payload); err != nil {
			return nil, fmt.Errorf("get games count=%d: %w", len(ids), err)
		}
		for _, item := range payload.Data.Games {
			state, err := game.ParseState(item.State)
			if err != nil {
				c.logger.WarnContext(ctx, "skip game with unknown state", "game_id", item.ID, "state", item.State)
				continue
			}
			out = append(out, usecase.GameState{ID: game.ID(item.ID), State: state})
		}
	}
	return out, nil
}

// GetSchedule fetches one schedule page. An empty token asks for the newest page.
func (c *Client) GetSchedule(ctx context.Context, pageToken string) (usecase.SchedulePage, error) {
	query := url.Values{}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	var payload scheduleEnvelope
	if _, err := c.doJSON(ctx, c.gatewayRequest("/getSchedule", query), &payload); err != nil {
		return usecase.SchedulePage{}, fmt.Errorf("get schedule: %w", err)
	}

	schedule := payload.Data.Schedule
	page := usecase.SchedulePage{
		OlderToken: derefString(schedule.Pages.Older),
		NewerToken: derefString(schedule.Pages.Newer),
		Matches:    make([]match.Match, 0, len(schedule.Events)),
	}
	for _, event := range schedule.Events {
		if event.Type != "match" || event.Match == nil || event.Match.ID == "" {
			continue
		}
		startTime, err := time.Parse(time.RFC3339, event.StartTime)
		if err != nil {
			c.logger.WarnContext(ctx, "skip schedule event with invalid start time", "match_id", event.Match.ID, "start_time", event.StartTime)
			continue
		}

		m := match.Match{
			ID:            match.ID(event.Match.ID),
			StartTime:     startTime.UTC(),
			BlockName:     event.BlockName,
			LeagueSlug:    event.League.Slug,
			StrategyType:  event.Match.Strategy.Type,
			StrategyCount: event.Match.Strategy.Count,
			HasGames:      true,
		}
		if len(event.Match.Teams) > 0 {
			m.Team1Name = event.Match.Teams[0].Name
		}
		if len(event.Match.Teams) > 1 {
			m.Team2Name = event.Match.Teams[1].Name
		}
		page.Matches = append(page.Matches, m)
	}
	return page, nil
}

func parseDate(raw string) time.Time {
	parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
