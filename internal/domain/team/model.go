package team

import "fmt"

type ID string

func (id ID) String() string { return string(id) }

// Team is a professional roster as listed by the feed.
type Team struct {
	ID               ID
	Slug             string
	Name             string
	Code             string
	Image            string
	AlternativeImage string
	HomeLeague       string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("team %s slug is required", t.ID)
	}
	return nil
}
