package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, leagueToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTournamentsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	tournaments, err := h.leagueService.ListTournamentsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]tournamentDTO, 0, len(tournaments))
	for _, item := range tournaments {
		items = append(items, tournamentToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type fantasyAvailableRequest struct {
	Available *bool `json:"available" validate:"required"`
}

func (h *Handler) SetLeagueFantasyAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetLeagueFantasyAvailable")
	defer span.End()

	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req fantasyAvailableRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	updated, err := h.leagueService.SetFantasyAvailable(ctx, leagueID, *req.Available)
	if err != nil {
		h.logger.WarnContext(ctx, "set fantasy available failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fantasy availability changed", "league_id", leagueID, "available", *req.Available)
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(updated))
}
