package lolesports

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
)

const (
	windowLag    = 60 * time.Second
	windowBucket = 10 * time.Second
)

// WindowStartingTime is the startingTime parameter of the live stats feed:
// at minus one minute, truncated to a 10 second bucket.
func WindowStartingTime(at time.Time) string {
	return at.UTC().Add(-windowLag).Truncate(windowBucket).Format("2006-01-02T15:04:05.000Z")
}

// GetPlayerMetadataForGame maps the ten participant slots of a game. It returns
// an empty slice when the feed has no window yet or when either team block
// fails validation.
func (c *Client) GetPlayerMetadataForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Metadata, error) {
	var payload windowEnvelope
	found, err := c.doJSON(ctx, c.liveStatsRequest("/window/"+url.PathEscape(string(gameID)), startingTimeQuery(at)), &payload)
	if err != nil {
		return nil, fmt.Errorf("get player metadata game=%s: %w", gameID, err)
	}
	if !found || payload.GameMetadata == nil {
		return nil, nil
	}

	teams := []struct {
		side gamedata.Side
		meta *teamMetadata
	}{
		{side: gamedata.SideBlue, meta: payload.GameMetadata.BlueTeamMetadata},
		{side: gamedata.SideRed, meta: payload.GameMetadata.RedTeamMetadata},
	}

	out := make([]gamedata.Metadata, 0, game.ParticipantsPerGame)
	for _, t := range teams {
		if t.meta == nil {
			c.logger.WarnContext(ctx, "player metadata team block missing", "game_id", gameID, "side", t.side)
			return nil, nil
		}
		if err := c.validate.StructCtx(ctx, t.meta); err != nil {
			c.logger.WarnContext(ctx, "player metadata team block invalid", "game_id", gameID, "side", t.side, "error", err)
			return nil, nil
		}
		for _, p := range t.meta.ParticipantMetadata {
			playerID := p.EsportsPlayerID
			if playerID == "" {
				playerID = strconv.Itoa(p.ParticipantID)
			}
			out = append(out, gamedata.Metadata{
				GameID:        gameID,
				ParticipantID: p.ParticipantID,
				PlayerID:      player.ID(playerID),
				TeamID:        team.ID(t.meta.EsportsTeamID),
				Side:          t.side,
				SummonerName:  p.SummonerName,
				ChampionID:    p.ChampionID,
				Role:          p.Role,
			})
		}
	}
	return out, nil
}

// GetPlayerStatsForGame returns the box score of the last frame of the
// details window.
func (c *Client) GetPlayerStatsForGame(ctx context.Context, gameID game.ID, at time.Time) ([]gamedata.Stats, error) {
	var payload detailsEnvelope
	found, err := c.doJSON(ctx, c.liveStatsRequest("/details/"+url.PathEscape(string(gameID)), startingTimeQuery(at)), &payload)
	if err != nil {
		return nil, fmt.Errorf("get player stats game=%s: %w", gameID, err)
	}
	if !found || len(payload.Frames) == 0 {
		return nil, nil
	}

	last := payload.Frames[len(payload.Frames)-1]
	out := make([]gamedata.Stats, 0, len(last.Participants))
	for _, p := range last.Participants {
		if p.ParticipantID <= 0 {
			continue
		}
		out = append(out, gamedata.Stats{
			GameID:              gameID,
			ParticipantID:       p.ParticipantID,
			Level:               p.Level,
			Kills:               p.Kills,
			Deaths:              p.Deaths,
			Assists:             p.Assists,
			TotalGoldEarned:     p.TotalGoldEarned,
			CreepScore:          p.CreepScore,
			KillParticipation:   ratioToPercent(p.KillParticipation),
			ChampionDamageShare: ratioToPercent(p.ChampionDamageShare),
			WardsPlaced:         p.WardsPlaced,
			WardsDestroyed:      p.WardsDestroyed,
		})
	}
	return out, nil
}

func startingTimeQuery(at time.Time) url.Values {
	query := url.Values{}
	query.Set("startingTime", WindowStartingTime(at))
	return query
}

// ratioToPercent rounds half to even, the same as the stored historical data.
func ratioToPercent(ratio float64) int {
	return int(math.RoundToEven(ratio * 100))
}
