package league

import (
	"fmt"
	"strings"
)

// ID identifies a provider league.
type ID string

func (id ID) String() string { return string(id) }

// League is a competitive league as published by the esports feed.
// FantasyAvailable is curated by an operator and never written by sync.
type League struct {
	ID               ID
	Slug             string
	Name             string
	Region           string
	Image            string
	Priority         int
	FantasyAvailable bool
}

func (l League) Validate() error {
	if strings.TrimSpace(string(l.ID)) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Slug) == "" {
		return fmt.Errorf("league slug is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
