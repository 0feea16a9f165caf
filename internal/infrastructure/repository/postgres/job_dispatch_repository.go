package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/esports-sync/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/esports-sync/internal/platform/querybuilder"
)

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	runID := strings.TrimSpace(event.RunID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}

	jobID := strings.TrimSpace(event.JobID)
	if jobID == "" {
		jobID = "unknown"
	}

	occurredAt := event.OccurredAt.UTC()
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	payloadJSON, err := marshalPayload(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	model := jobDispatchEventInsertModel{
		RunID:        runID,
		Status:       string(event.Status),
		JobID:        jobID,
		Source:       string(event.Source),
		Attempts:     event.Attempts,
		Payload:      payloadJSON,
		ErrorMessage: nullableString(event.ErrorMessage),
		TraceID:      nullableString(event.TraceID),
		SpanID:       nullableString(event.SpanID),
		OccurredAt:   occurredAt,
	}

	query, args, err := qb.InsertModel("job_dispatch_events", model, qb.OnConflict("run_id", "status").
		Update("attempts", "payload", "error_message").
		KeepExisting("trace_id", "span_id").
		Update("occurred_at"))
	if err != nil {
		return fmt.Errorf("build upsert job dispatch event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch event run_id=%s status=%s: %w", runID, event.Status, err)
	}
	return nil
}

func (r *JobDispatchRepository) ListLatest(ctx context.Context) ([]jobscheduler.DispatchEvent, error) {
	query, args, err := qb.Select("DISTINCT ON (job_id) *").From("job_dispatch_events").
		OrderBy("job_id", "occurred_at DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select latest job dispatch events query: %w", err)
	}

	var rows []jobDispatchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select latest job dispatch events: %w", err)
	}

	out := make([]jobscheduler.DispatchEvent, 0, len(rows))
	for _, row := range rows {
		payload, err := unmarshalPayload(row.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode payload run_id=%s: %w", row.RunID, err)
		}
		out = append(out, jobscheduler.DispatchEvent{
			RunID:        row.RunID,
			JobID:        row.JobID,
			Source:       jobscheduler.TriggerSource(row.Source),
			Status:       jobscheduler.RunStatus(row.Status),
			Attempts:     row.Attempts,
			Payload:      payload,
			ErrorMessage: stringFromNull(row.ErrorMessage),
			OccurredAt:   row.OccurredAt.UTC(),
			TraceID:      stringFromNull(row.TraceID),
			SpanID:       stringFromNull(row.SpanID),
		})
	}
	return out, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	raw, err := jsoniter.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalPayload(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any)
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
