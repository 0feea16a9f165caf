package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	"github.com/riskibarqy/esports-sync/internal/platform/id"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/riskibarqy/esports-sync/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// JobFunc is one synchronization job. The returned value is recorded as the
// payload of the completed dispatch event.
type JobFunc func(ctx context.Context) (any, error)

// JobRunnerService runs registered jobs under the bounded retry policy and
// records a started event and one completed or failed event per run.
type JobRunnerService struct {
	mu           sync.RWMutex
	jobs         map[string]JobFunc
	dispatchRepo jobscheduler.Repository
	ids          id.Generator
	policy       resilience.RetryPolicy
	logger       *logging.Logger
	now          func() time.Time
}

func NewJobRunnerService(
	dispatchRepo jobscheduler.Repository,
	ids id.Generator,
	policy resilience.RetryPolicy,
	logger *logging.Logger,
) *JobRunnerService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewTimeOrderedGenerator()
	}
	if policy.MaxAttempts <= 0 {
		policy = resilience.DefaultRetryPolicy()
	}
	return &JobRunnerService{
		jobs:         make(map[string]JobFunc),
		dispatchRepo: dispatchRepo,
		ids:          ids,
		policy:       policy,
		logger:       logger.Named("job_runner"),
		now:          time.Now,
	}
}

func (s *JobRunnerService) Register(jobID string, fn JobFunc) error {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" || fn == nil {
		return fmt.Errorf("%w: job id and function are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[jobID]; exists {
		return fmt.Errorf("%w: job %s is already registered", ErrInvalidInput, jobID)
	}
	s.jobs[jobID] = fn
	return nil
}

func (s *JobRunnerService) JobIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.jobs))
	for jobID := range s.jobs {
		out = append(out, jobID)
	}
	sort.Strings(out)
	return out
}

func (s *JobRunnerService) Has(jobID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.jobs[jobID]
	return ok
}

// Run executes one job invocation. After the last failed attempt the run is
// abandoned; the next trigger is the recovery path.
func (s *JobRunnerService) Run(ctx context.Context, jobID string, source jobscheduler.TriggerSource) error {
	s.mu.RLock()
	fn, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, jobID)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}

	ctx, span := startJobSpan(ctx, jobID)
	defer span.End()
	span.SetAttributes(
		attribute.String("job.id", jobID),
		attribute.String("job.run_id", runID),
		attribute.String("job.source", string(source)),
	)

	logger := s.logger.With("job_id", jobID, "run_id", runID, "source", source)
	logger.InfoContext(ctx, "job started")
	s.record(ctx, jobscheduler.DispatchEvent{RunID: runID, JobID: jobID, Source: source, Status: jobscheduler.StatusStarted})

	policy := s.policy
	policy.OnFailure = func(attempt int, err error) {
		logger.WarnContext(ctx, "job attempt failed", "attempt", attempt, "max_attempts", policy.MaxAttempts, "error", err)
	}

	started := s.now()
	var output any
	attempts, err := resilience.Retry(ctx, policy, func(ctx context.Context) error {
		out, err := fn(ctx)
		output = out
		return err
	})
	span.SetAttributes(attribute.Int("job.attempts", attempts))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "job abandoned", "attempts", attempts, "error", err)
		s.record(ctx, jobscheduler.DispatchEvent{
			RunID:        runID,
			JobID:        jobID,
			Source:       source,
			Status:       jobscheduler.StatusFailed,
			Attempts:     attempts,
			ErrorMessage: err.Error(),
		})
		return err
	}

	elapsed := s.now().Sub(started)
	logger.InfoContext(ctx, "job completed", "attempts", attempts, "duration_ms", elapsed.Milliseconds())
	s.record(ctx, jobscheduler.DispatchEvent{
		RunID:    runID,
		JobID:    jobID,
		Source:   source,
		Status:   jobscheduler.StatusCompleted,
		Attempts: attempts,
		Payload: map[string]any{
			"result":      output,
			"duration_ms": elapsed.Milliseconds(),
		},
	})
	return nil
}

// LatestRuns returns the newest dispatch event per job id.
func (s *JobRunnerService) LatestRuns(ctx context.Context) ([]jobscheduler.DispatchEvent, error) {
	if s.dispatchRepo == nil {
		return []jobscheduler.DispatchEvent{}, nil
	}
	events, err := s.dispatchRepo.ListLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("list latest job runs: %w", err)
	}
	return events, nil
}

// record never fails the job; the dispatch ledger is diagnostic.
func (s *JobRunnerService) record(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		event.TraceID = spanCtx.TraceID().String()
		event.SpanID = spanCtx.SpanID().String()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"job_id", event.JobID,
			"run_id", event.RunID,
			"status", event.Status,
			"error", err,
		)
	}
}
