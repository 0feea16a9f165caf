package gamedata

import (
	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
)

type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// Metadata maps one participant slot of a game to a player and champion.
// Keyed by (GameID, ParticipantID).
type Metadata struct {
	GameID        game.ID
	ParticipantID int
	PlayerID      player.ID
	TeamID        team.ID
	Side          Side
	SummonerName  string
	ChampionID    string
	Role          string
}

// Stats is the box score of one participant at the latest observed frame.
// KillParticipation and ChampionDamageShare are whole percentages.
type Stats struct {
	GameID              game.ID
	ParticipantID       int
	Level               int
	Kills               int
	Deaths              int
	Assists             int
	TotalGoldEarned     int
	CreepScore          int
	KillParticipation   int
	ChampionDamageShare int
	WardsPlaced         int
	WardsDestroyed      int
}

// PlayerGameData joins metadata and stats for one player in one game.
type PlayerGameData struct {
	Metadata
	Level               int
	Kills               int
	Deaths              int
	Assists             int
	TotalGoldEarned     int
	CreepScore          int
	KillParticipation   int
	ChampionDamageShare int
	WardsPlaced         int
	WardsDestroyed      int
}

// Join combines a metadata row with the stats row of the same participant.
func Join(meta Metadata, stats Stats) PlayerGameData {
	return PlayerGameData{
		Metadata:            meta,
		Level:               stats.Level,
		Kills:               stats.Kills,
		Deaths:              stats.Deaths,
		Assists:             stats.Assists,
		TotalGoldEarned:     stats.TotalGoldEarned,
		CreepScore:          stats.CreepScore,
		KillParticipation:   stats.KillParticipation,
		ChampionDamageShare: stats.ChampionDamageShare,
		WardsPlaced:         stats.WardsPlaced,
		WardsDestroyed:      stats.WardsDestroyed,
	}
}

// Filter narrows the joined view. Zero values match everything.
type Filter struct {
	GameID   game.ID
	PlayerID player.ID
	Limit    int
	Offset   int
}
