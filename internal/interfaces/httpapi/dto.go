package httpapi

import (
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

const dateLayout = "2006-01-02"

type leagueDTO struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Region           string `json:"region"`
	Image            string `json:"image,omitempty"`
	Priority         int    `json:"priority"`
	FantasyAvailable bool   `json:"fantasy_available"`
}

type tournamentDTO struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	LeagueID  string `json:"league_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type playerGameDataDTO struct {
	GameID              string `json:"game_id"`
	ParticipantID       int    `json:"participant_id"`
	PlayerID            string `json:"player_id"`
	TeamID              string `json:"team_id"`
	Side                string `json:"side"`
	SummonerName        string `json:"summoner_name"`
	ChampionID          string `json:"champion_id"`
	Role                string `json:"role"`
	Level               int    `json:"level"`
	Kills               int    `json:"kills"`
	Deaths              int    `json:"deaths"`
	Assists             int    `json:"assists"`
	TotalGoldEarned     int    `json:"total_gold_earned"`
	CreepScore          int    `json:"creep_score"`
	KillParticipation   int    `json:"kill_participation"`
	ChampionDamageShare int    `json:"champion_damage_share"`
	WardsPlaced         int    `json:"wards_placed"`
	WardsDestroyed      int    `json:"wards_destroyed"`
}

type playerGameDataPageDTO struct {
	Items  []playerGameDataDTO `json:"items"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

type jobTriggerDTO struct {
	JobID    string `json:"job_id"`
	Accepted bool   `json:"accepted"`
	Mode     string `json:"mode"`
}

type jobDTO struct {
	JobID   string     `json:"job_id"`
	Trigger string     `json:"trigger,omitempty"`
	NextRun string     `json:"next_run,omitempty"`
	Running bool       `json:"running"`
	LastRun *jobRunDTO `json:"last_run,omitempty"`
}

type jobRunDTO struct {
	RunID        string `json:"run_id"`
	Source       string `json:"source"`
	Status       string `json:"status"`
	Attempts     int    `json:"attempts"`
	ErrorMessage string `json:"error_message,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:               string(v.ID),
		Slug:             v.Slug,
		Name:             v.Name,
		Region:           v.Region,
		Image:            v.Image,
		Priority:         v.Priority,
		FantasyAvailable: v.FantasyAvailable,
	}
}

func tournamentToDTO(v usecase.TournamentView) tournamentDTO {
	return tournamentDTO{
		ID:        string(v.ID),
		Slug:      v.Slug,
		LeagueID:  string(v.LeagueID),
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
		Status:    string(v.Status),
	}
}

func playerGameDataToDTO(v gamedata.PlayerGameData) playerGameDataDTO {
	return playerGameDataDTO{
		GameID:              string(v.GameID),
		ParticipantID:       v.ParticipantID,
		PlayerID:            string(v.PlayerID),
		TeamID:              string(v.TeamID),
		Side:                string(v.Side),
		SummonerName:        v.SummonerName,
		ChampionID:          v.ChampionID,
		Role:                v.Role,
		Level:               v.Level,
		Kills:               v.Kills,
		Deaths:              v.Deaths,
		Assists:             v.Assists,
		TotalGoldEarned:     v.TotalGoldEarned,
		CreepScore:          v.CreepScore,
		KillParticipation:   v.KillParticipation,
		ChampionDamageShare: v.ChampionDamageShare,
		WardsPlaced:         v.WardsPlaced,
		WardsDestroyed:      v.WardsDestroyed,
	}
}

func jobRunToDTO(v jobscheduler.DispatchEvent) *jobRunDTO {
	return &jobRunDTO{
		RunID:        v.RunID,
		Source:       string(v.Source),
		Status:       string(v.Status),
		Attempts:     v.Attempts,
		ErrorMessage: v.ErrorMessage,
		OccurredAt:   v.OccurredAt.UTC().Format(time.RFC3339),
	}
}

func formatDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(dateLayout)
}

func formatOptionalTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
