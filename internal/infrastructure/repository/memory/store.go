package memory

import (
	"sync"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/domain/league"
	"github.com/riskibarqy/esports-sync/internal/domain/match"
	"github.com/riskibarqy/esports-sync/internal/domain/player"
	"github.com/riskibarqy/esports-sync/internal/domain/synccursor"
	"github.com/riskibarqy/esports-sync/internal/domain/team"
	"github.com/riskibarqy/esports-sync/internal/domain/tournament"
)

type participantKey struct {
	gameID        game.ID
	participantID int
}

// Store holds every entity behind one lock so the aggregate queries see a
// consistent snapshot, the same way a single SQL statement would.
type Store struct {
	mu          sync.RWMutex
	leagues     map[league.ID]league.League
	tournaments map[tournament.ID]tournament.Tournament
	matches     map[match.ID]match.Match
	games       map[game.ID]game.Game
	teams       map[team.ID]team.Team
	players     map[player.ID]player.Player
	metadata    map[participantKey]gamedata.Metadata
	stats       map[participantKey]gamedata.Stats
	cursors     map[synccursor.Name]synccursor.Record
	dispatches  []jobscheduler.DispatchEvent
}

func NewStore() *Store {
	return &Store{
		leagues:     make(map[league.ID]league.League),
		tournaments: make(map[tournament.ID]tournament.Tournament),
		matches:     make(map[match.ID]match.Match),
		games:       make(map[game.ID]game.Game),
		teams:       make(map[team.ID]team.Team),
		players:     make(map[player.ID]player.Player),
		metadata:    make(map[participantKey]gamedata.Metadata),
		stats:       make(map[participantKey]gamedata.Stats),
		cursors:     make(map[synccursor.Name]synccursor.Record),
	}
}
