package tournament

import (
	"fmt"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/league"
)

type ID string

func (id ID) String() string { return string(id) }

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Tournament is one split or event of a league. Dates carry no time component.
type Tournament struct {
	ID        ID
	Slug      string
	StartDate time.Time
	EndDate   time.Time
	LeagueID  league.ID
}

// Status is derived from the calendar dates at query time and never stored.
func (t Tournament) Status(now time.Time) Status {
	today := DateOf(now)
	switch {
	case today.Before(DateOf(t.StartDate)):
		return StatusUpcoming
	case today.After(DateOf(t.EndDate)):
		return StatusCompleted
	default:
		return StatusActive
	}
}

func (t Tournament) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("tournament league id is required")
	}
	if !t.EndDate.IsZero() && DateOf(t.EndDate).Before(DateOf(t.StartDate)) {
		return fmt.Errorf("tournament %s ends before it starts", t.ID)
	}
	return nil
}

// DateOf drops the time component, keeping the UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
