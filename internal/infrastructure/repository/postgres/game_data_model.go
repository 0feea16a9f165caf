package postgres

type gamePlayerMetadataInsertModel struct {
	GameID        string `db:"game_id"`
	ParticipantID int    `db:"participant_id"`
	PlayerID      string `db:"player_id"`
	TeamID        string `db:"team_id"`
	Side          string `db:"side"`
	SummonerName  string `db:"summoner_name"`
	ChampionID    string `db:"champion_id"`
	Role          string `db:"role"`
}

type gamePlayerStatsInsertModel struct {
	GameID              string `db:"game_id"`
	ParticipantID       int    `db:"participant_id"`
	Level               int    `db:"level"`
	Kills               int    `db:"kills"`
	Deaths              int    `db:"deaths"`
	Assists             int    `db:"assists"`
	TotalGoldEarned     int    `db:"total_gold_earned"`
	CreepScore          int    `db:"creep_score"`
	KillParticipation   int    `db:"kill_participation"`
	ChampionDamageShare int    `db:"champion_damage_share"`
	WardsPlaced         int    `db:"wards_placed"`
	WardsDestroyed      int    `db:"wards_destroyed"`
}

// playerGameDataRow embeds both insert shapes; the shared key columns are
// selected once through the metadata side.
type playerGameDataRow struct {
	gamePlayerMetadataInsertModel
	Level               int `db:"level"`
	Kills               int `db:"kills"`
	Deaths              int `db:"deaths"`
	Assists             int `db:"assists"`
	TotalGoldEarned     int `db:"total_gold_earned"`
	CreepScore          int `db:"creep_score"`
	KillParticipation   int `db:"kill_participation"`
	ChampionDamageShare int `db:"champion_damage_share"`
	WardsPlaced         int `db:"wards_placed"`
	WardsDestroyed      int `db:"wards_destroyed"`
}

var playerGameDataColumns = []string{
	"pm.game_id", "pm.participant_id", "pm.player_id", "pm.team_id", "pm.side",
	"pm.summoner_name", "pm.champion_id", "pm.role",
	"ps.level", "ps.kills", "ps.deaths", "ps.assists", "ps.total_gold_earned",
	"ps.creep_score", "ps.kill_participation", "ps.champion_damage_share",
	"ps.wards_placed", "ps.wards_destroyed",
}
