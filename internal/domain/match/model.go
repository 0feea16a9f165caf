package match

import (
	"fmt"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
)

type ID string

func (id ID) String() string { return string(id) }

// Match is a series between two teams discovered from the schedule feed.
// HasGames is false for matches the provider never produces games for, e.g. byes.
type Match struct {
	ID            ID
	StartTime     time.Time
	BlockName     string
	LeagueSlug    string
	StrategyType  string
	StrategyCount int
	TournamentID  tournament.ID
	Team1Name     string
	Team2Name     string
	HasGames      bool
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.StartTime.IsZero() {
		return fmt.Errorf("match %s start time is required", m.ID)
	}
	return nil
}
