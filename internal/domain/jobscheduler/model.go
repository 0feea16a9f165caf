package jobscheduler

import "time"

type RunStatus string

const (
	StatusStarted   RunStatus = "started"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

type TriggerSource string

const (
	SourceSchedule TriggerSource = "schedule"
	SourceManual   TriggerSource = "manual"
)

// DispatchEvent is one status change of a job run. A run produces a started
// event followed by exactly one completed or failed event with the same RunID.
type DispatchEvent struct {
	RunID        string
	JobID        string
	Source       TriggerSource
	Status       RunStatus
	Attempts     int
	Payload      map[string]any
	ErrorMessage string
	OccurredAt   time.Time
	TraceID      string
	SpanID       string
}
