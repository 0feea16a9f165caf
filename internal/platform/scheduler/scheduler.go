package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"github.com/robfig/cron/v3"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

var ErrUnknownJob = errors.New("scheduler: unknown job")

// Fire describes one invocation handed to a Job.
type Fire struct {
	JobID  string
	Manual bool
}

type Job func(ctx context.Context, fire Fire) error

// Entry is a read-only view of one registered job.
type Entry struct {
	JobID   string
	Trigger string
	NextRun time.Time
	Running bool
}

type slot struct {
	id       string
	trigger  Trigger
	schedule cron.Schedule
	job      Job
	// wake holds at most one pending manual run; further triggers coalesce.
	wake chan struct{}

	mu      sync.Mutex
	next    time.Time
	running bool
}

// Scheduler runs every registered job in its own slot. A slot never runs
// its job concurrently with itself; different slots run independently.
type Scheduler struct {
	mu      sync.RWMutex
	slots   map[string]*slot
	started bool
	logger  *logging.Logger
	now     func() time.Time
}

func New(logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		slots:  make(map[string]*slot),
		logger: logger.Named("scheduler"),
		now:    time.Now,
	}
}

// Add registers a job. Jobs must be added before Run.
func (s *Scheduler) Add(jobID string, trigger Trigger, job Job) error {
	if jobID == "" || trigger == nil || job == nil {
		return errors.New("scheduler: job id, trigger and job are required")
	}
	schedule, err := trigger.Schedule()
	if err != nil {
		return errors.Wrapf(err, "scheduler: job %s", jobID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.Newf("scheduler: cannot add job %s after start", jobID)
	}
	if _, exists := s.slots[jobID]; exists {
		return errors.Newf("scheduler: job %s already registered", jobID)
	}
	s.slots[jobID] = &slot{
		id:       jobID,
		trigger:  trigger,
		schedule: schedule,
		job:      job,
		wake:     make(chan struct{}, 1),
		next:     schedule.Next(s.now()),
	}
	return nil
}

// Trigger asks for an immediate run of jobID. It never blocks: when a run
// is already pending the request is folded into it.
func (s *Scheduler) Trigger(jobID string) error {
	s.mu.RLock()
	sl, ok := s.slots[jobID]
	s.mu.RUnlock()
	if !ok {
		return errors.Wrapf(ErrUnknownJob, "job %s", jobID)
	}

	select {
	case sl.wake <- struct{}{}:
		s.logger.Info("job run requested", "job_id", jobID)
	default:
		s.logger.Debug("job run already pending", "job_id", jobID)
	}
	return nil
}

func (s *Scheduler) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.slots))
	for _, sl := range s.slots {
		sl.mu.Lock()
		out = append(out, Entry{JobID: sl.id, Trigger: sl.trigger.String(), NextRun: sl.next, Running: sl.running})
		sl.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JobID < out[j].JobID })
	return out
}

// Run drives every slot until ctx is cancelled and waits for in-flight
// jobs to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("scheduler: already running")
	}
	s.started = true
	slots := make([]*slot, 0, len(s.slots))
	for _, sl := range s.slots {
		slots = append(slots, sl)
	}
	s.mu.Unlock()

	s.logger.Info("scheduler started", "jobs", len(slots))

	var wg conc.WaitGroup
	for _, sl := range slots {
		wg.Go(func() { s.loop(ctx, sl) })
	}
	wg.Wait()

	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) loop(ctx context.Context, sl *slot) {
	for {
		sl.mu.Lock()
		next := sl.next
		sl.mu.Unlock()

		timer := time.NewTimer(max(next.Sub(s.now()), 0))
		manual := false
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-sl.wake:
			timer.Stop()
			manual = true
		}

		s.execute(ctx, sl, manual)

		sl.mu.Lock()
		if !manual || !sl.next.After(s.now()) {
			sl.next = sl.schedule.Next(s.now())
		}
		sl.mu.Unlock()
	}
}

func (s *Scheduler) execute(ctx context.Context, sl *slot, manual bool) {
	sl.mu.Lock()
	sl.running = true
	sl.mu.Unlock()
	defer func() {
		sl.mu.Lock()
		sl.running = false
		sl.mu.Unlock()
	}()

	var (
		catcher panics.Catcher
		err     error
	)
	catcher.Try(func() { err = sl.job(ctx, Fire{JobID: sl.id, Manual: manual}) })
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil && ctx.Err() == nil {
		s.logger.Error("scheduled job failed", "job_id", sl.id, "manual", manual, "error", err)
	}
}
