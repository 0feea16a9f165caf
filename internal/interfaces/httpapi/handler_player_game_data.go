package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/esports-sync/internal/usecase"
)

func (h *Handler) ListPlayerGameData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerGameData")
	defer span.End()

	query := r.URL.Query()
	limit, err := parseIntQuery(query.Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	offset, err := parseIntQuery(query.Get("offset"), "offset")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	page, err := h.playerGameDataService.List(ctx, usecase.PlayerGameDataQuery{
		GameID:   query.Get("game_id"),
		PlayerID: query.Get("player_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list player game data failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerGameDataDTO, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, playerGameDataToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, playerGameDataPageDTO{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// parseIntQuery treats an absent parameter as zero so the service default
// applies.
func parseIntQuery(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
