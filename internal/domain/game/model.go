package game

import (
	"fmt"

	"github.com/riskibarqy/esports-sync/internal/domain/match"
)

type ID string

func (id ID) String() string { return string(id) }

// Game is one map of a match.
//
// HasGameData turns false once a metadata or stats fetch comes back empty and
// the game is then excluded from every data fetch. PendingFinalStatsPulls is
// the number of stats pulls still owed after the game reached completed; the
// game carries the last_stats_fetch flag while it is above zero.
type Game struct {
	ID                     ID
	State                  State
	Number                 int
	MatchID                match.ID
	HasGameData            bool
	PendingFinalStatsPulls int
}

func (g Game) LastStatsFetch() bool {
	return g.PendingFinalStatsPulls > 0
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.MatchID == "" {
		return fmt.Errorf("game %s match id is required", g.ID)
	}
	if !g.State.Valid() {
		return fmt.Errorf("game %s has invalid state %q", g.ID, g.State)
	}
	return nil
}
