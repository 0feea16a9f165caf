package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestTimeOrderedGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewTimeOrderedGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	parsed, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("unexpected uuid version: got=%d want=7", parsed.Version())
	}
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	if first > second {
		t.Fatalf("expected time-ordered ids: %s > %s", first, second)
	}
}
