package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/esports-sync/internal/domain/game"
	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
)

func TestGameDataRepository_JoinedViewIsSortedAndPaginated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewGameDataRepository(NewStore())
	for _, id := range []game.ID{"g-2", "g-1"} {
		meta, stats := participantRows(id, 1, 10)
		for i := range meta {
			meta[i].PlayerID = "p"
		}
		if err := repo.UpsertMetadata(ctx, meta); err != nil {
			t.Fatalf("upsert metadata: %v", err)
		}
		if err := repo.UpsertStats(ctx, stats); err != nil {
			t.Fatalf("upsert stats: %v", err)
		}
	}

	page, err := repo.ListPlayerGameData(ctx, gamedata.Filter{Limit: 5, Offset: 8})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 5 {
		t.Fatalf("unexpected page size: got=%d want=5", len(page))
	}
	if page[0].GameID != "g-1" || page[0].ParticipantID != 9 {
		t.Fatalf("unexpected first row: %+v", page[0].Metadata)
	}
	if page[2].GameID != "g-2" || page[2].ParticipantID != 1 {
		t.Fatalf("unexpected third row: %+v", page[2].Metadata)
	}
}

func TestGameDataRepository_UpsertStatsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore()
	repo := NewGameDataRepository(store)
	if err := repo.UpsertStats(ctx, []gamedata.Stats{{GameID: "g-1", ParticipantID: 1, Kills: 1}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertStats(ctx, []gamedata.Stats{{GameID: "g-1", ParticipantID: 1, Kills: 5}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(store.stats) != 1 {
		t.Fatalf("unexpected stats rows: %d", len(store.stats))
	}
	if got := store.stats[participantKey{gameID: "g-1", participantID: 1}].Kills; got != 5 {
		t.Fatalf("unexpected kills: got=%d want=5", got)
	}
}
