package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/scheduler"
	"github.com/riskibarqy/esports-sync/internal/usecase"
)

// JobScheduler is the part of the in-process scheduler the operator surface
// needs. A nil scheduler means jobs only run on demand.
type JobScheduler interface {
	Trigger(jobID string) error
	Entries() []scheduler.Entry
}

type Handler struct {
	leagueService         *usecase.LeagueService
	playerGameDataService *usecase.PlayerGameDataService
	jobRunner             *usecase.JobRunnerService
	jobScheduler          JobScheduler
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	playerGameDataService *usecase.PlayerGameDataService,
	jobRunner *usecase.JobRunnerService,
	jobScheduler JobScheduler,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:         leagueService,
		playerGameDataService: playerGameDataService,
		jobRunner:             jobRunner,
		jobScheduler:          jobScheduler,
		logger:                logger.Named("httpapi"),
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
