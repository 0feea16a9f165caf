package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/usecase"
	"github.com/sourcegraph/conc/panics"
)

// TriggerJob acknowledges a manual run and returns before it finishes. With a
// scheduler the run goes through the job's slot, so it never overlaps a
// scheduled run of the same job.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerJob")
	defer span.End()

	if h.jobRunner == nil {
		writeError(ctx, w, fmt.Errorf("%w: job runner is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	jobID := strings.TrimSpace(r.PathValue("jobID"))
	if !h.jobRunner.Has(jobID) {
		writeError(ctx, w, fmt.Errorf("%w: job=%s", usecase.ErrUnknownJob, jobID))
		return
	}

	mode := "scheduler"
	if h.jobScheduler != nil {
		if err := h.jobScheduler.Trigger(jobID); err != nil {
			h.logger.WarnContext(ctx, "trigger job failed", "job_id", jobID, "error", err)
			writeError(ctx, w, err)
			return
		}
	} else {
		mode = "detached"
		go h.runDetached(context.WithoutCancel(ctx), jobID)
	}

	h.logger.InfoContext(ctx, "job triggered", "job_id", jobID, "mode", mode)
	writeSuccess(ctx, w, http.StatusAccepted, jobTriggerDTO{
		JobID:    jobID,
		Accepted: true,
		Mode:     mode,
	})
}

func (h *Handler) runDetached(ctx context.Context, jobID string) {
	var runErr error
	recovered := panics.Try(func() {
		runErr = h.jobRunner.Run(ctx, jobID, jobscheduler.SourceManual)
	})
	if recovered != nil {
		h.logger.ErrorContext(ctx, "manual job panicked", "job_id", jobID, "error", recovered.AsError())
		return
	}
	if runErr != nil {
		// The runner has already recorded the failure.
		h.logger.DebugContext(ctx, "manual job finished with error", "job_id", jobID, "error", runErr)
	}
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobs")
	defer span.End()

	if h.jobRunner == nil {
		writeError(ctx, w, fmt.Errorf("%w: job runner is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	latest, err := h.jobRunner.LatestRuns(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list latest job runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	lastRunByJob := make(map[string]jobscheduler.DispatchEvent, len(latest))
	for _, event := range latest {
		lastRunByJob[event.JobID] = event
	}

	items := make(map[string]*jobDTO)
	for _, jobID := range h.jobRunner.JobIDs() {
		items[jobID] = &jobDTO{JobID: jobID}
	}
	if h.jobScheduler != nil {
		for _, entry := range h.jobScheduler.Entries() {
			item, ok := items[entry.JobID]
			if !ok {
				item = &jobDTO{JobID: entry.JobID}
				items[entry.JobID] = item
			}
			item.Trigger = entry.Trigger
			item.Running = entry.Running
			item.NextRun = formatOptionalTime(entry.NextRun)
		}
	}

	out := make([]jobDTO, 0, len(items))
	for jobID, item := range items {
		if event, ok := lastRunByJob[jobID]; ok {
			item.LastRun = jobRunToDTO(event)
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })

	writeSuccess(ctx, w, http.StatusOK, out)
}
