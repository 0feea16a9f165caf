package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/esports-sync/internal/domain/gamedata"
	"github.com/riskibarqy/esports-sync/internal/infrastructure/repository/memory"
)

func TestPlayerGameDataService_ListAppliesPagingDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewGameDataRepository(store)
	if err := repo.UpsertMetadata(ctx, metadataRows("g-1", 10)); err != nil {
		t.Fatalf("seed metadata: %v", err)
	}
	if err := repo.UpsertStats(ctx, statsRows("g-1", 10)); err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	service := NewPlayerGameDataService(repo)

	page, err := service.List(ctx, PlayerGameDataQuery{})
	if err != nil {
		t.Fatalf("list player game data: %v", err)
	}
	if page.Limit != defaultPlayerGameDataLimit {
		t.Fatalf("unexpected default limit: got=%d want=%d", page.Limit, defaultPlayerGameDataLimit)
	}
	if len(page.Items) != 10 {
		t.Fatalf("unexpected item count: got=%d want=%d", len(page.Items), 10)
	}

	capped, err := service.List(ctx, PlayerGameDataQuery{Limit: 10_000, Offset: 8})
	if err != nil {
		t.Fatalf("list with large limit: %v", err)
	}
	if capped.Limit != maxPlayerGameDataLimit {
		t.Fatalf("unexpected capped limit: got=%d want=%d", capped.Limit, maxPlayerGameDataLimit)
	}
	if len(capped.Items) != 2 || capped.Items[0].ParticipantID != 9 {
		t.Fatalf("unexpected page after offset: %+v", capped.Items)
	}

	byPlayer, err := service.List(ctx, PlayerGameDataQuery{PlayerID: " p-3 "})
	if err != nil {
		t.Fatalf("list by player: %v", err)
	}
	if len(byPlayer.Items) != 1 || byPlayer.Items[0].Kills != 3 {
		t.Fatalf("unexpected player filter result: %+v", byPlayer.Items)
	}
}

func TestPlayerGameDataService_ListRejectsNegativePaging(t *testing.T) {
	t.Parallel()

	service := NewPlayerGameDataService(memory.NewGameDataRepository(memory.NewStore()))
	for _, query := range []PlayerGameDataQuery{{Limit: -1}, {Offset: -5}} {
		if _, err := service.List(context.Background(), query); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", query, err)
		}
	}
}

var _ gamedata.Repository = (*memory.GameDataRepository)(nil)
