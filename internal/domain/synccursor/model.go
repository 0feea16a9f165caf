package synccursor

import "fmt"

// Name identifies one of the two schedule cursors.
type Name string

const (
	// ForwardName is the incremental pointer toward the live edge.
	ForwardName Name = "riot_schedule"
	// BackfillName is the one-time bookmark walking back through history.
	BackfillName Name = "entire_schedule"
)

func (n Name) Valid() bool {
	return n == ForwardName || n == BackfillName
}

// Record is the stored row shared by both cursors. An empty token is null.
type Record struct {
	Name         Name
	OlderToken   string
	CurrentToken string
}

func (r Record) Validate() error {
	if !r.Name.Valid() {
		return fmt.Errorf("unknown sync cursor %q", r.Name)
	}
	return nil
}

// Forward is the incremental schedule cursor. CurrentToken is the "newer"
// token of the last processed page; empty means start from the newest page.
type Forward struct {
	CurrentToken string
}

// Backfill is the backward walk cursor. Empty OlderToken means provider
// history is exhausted.
type Backfill struct {
	OlderToken string
}

func (b Backfill) Done() bool {
	return b.OlderToken == ""
}
