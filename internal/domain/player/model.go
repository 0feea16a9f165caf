package player

import (
	"fmt"

	"github.com/riskibarqy/esports-sync/internal/domain/team"
)

type ID string

func (id ID) String() string { return string(id) }

// Player is a rostered professional. TeamID is empty for free agents.
type Player struct {
	ID           ID
	SummonerName string
	FirstName    string
	LastName     string
	Image        string
	Role         string
	TeamID       team.ID
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.SummonerName == "" {
		return fmt.Errorf("player %s summoner name is required", p.ID)
	}
	return nil
}
