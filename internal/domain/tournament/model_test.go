package tournament

import (
	"testing"
	"time"
)

func TestTournament_StatusIsDerivedFromDates(t *testing.T) {
	t.Parallel()

	item := Tournament{
		ID:        "t-1",
		LeagueID:  "l-1",
		StartDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		now  time.Time
		want Status
	}{
		{now: time.Date(2026, 1, 9, 23, 59, 0, 0, time.UTC), want: StatusUpcoming},
		{now: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), want: StatusActive},
		{now: time.Date(2026, 3, 20, 22, 0, 0, 0, time.UTC), want: StatusActive},
		{now: time.Date(2026, 3, 21, 0, 0, 1, 0, time.UTC), want: StatusCompleted},
	}
	for _, tc := range cases {
		if got := item.Status(tc.now); got != tc.want {
			t.Fatalf("unexpected status at %s: got=%s want=%s", tc.now, got, tc.want)
		}
	}
}

func TestTournament_ValidateRejectsInvertedDates(t *testing.T) {
	t.Parallel()

	item := Tournament{
		ID:        "t-1",
		LeagueID:  "l-1",
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := item.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}
