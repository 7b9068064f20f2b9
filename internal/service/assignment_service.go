package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/engine"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

const finishedJobRetention = time.Hour

// JobState is the lifecycle state of a background assignment.
type JobState string

const (
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobCancelled JobState = "cancelled"
	JobFailed    JobState = "failed"
)

// AssignmentResult is the outcome of an auto-assignment.
type AssignmentResult struct {
	Period  domain.Period           `json:"period"`
	Grid    domain.Grid             `json:"workplaces"`
	Report  engine.AssignmentReport `json:"report"`
	Summary []engine.EngineerCount  `json:"summary"`
}

// JobStatus is a snapshot of a background assignment.
type JobStatus struct {
	ID         string            `json:"id"`
	Period     domain.Period     `json:"period"`
	State      JobState          `json:"state"`
	Persist    bool              `json:"persist"`
	Progress   engine.Progress   `json:"progress"`
	Result     *AssignmentResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

// GridSaver validates and stores the grid of a period.
type GridSaver interface {
	Save(ctx context.Context, period domain.Period, grid domain.Grid) (domain.Grid, error)
}

type job struct {
	status JobStatus
	cancel context.CancelFunc
	done   chan struct{}
}

// AssignmentService runs the assignment engine against the roster.
type AssignmentService struct {
	engineers  repository.EngineerRepository
	schedules  repository.ScheduleRepository
	saver      GridSaver
	workplaces []string
	chunkDays  int
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu   sync.Mutex
	jobs map[string]*job
	now  func() time.Time
}

// AssignmentDependencies bundles collaborators of the assignment service.
type AssignmentDependencies struct {
	EngineerRepo repository.EngineerRepository
	ScheduleRepo repository.ScheduleRepository
	Saver        GridSaver
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(cfg config.SchedulerConfig, deps AssignmentDependencies) *AssignmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		engineers:  deps.EngineerRepo,
		schedules:  deps.ScheduleRepo,
		saver:      deps.Saver,
		workplaces: cfg.Workplaces,
		chunkDays:  cfg.ChunkDays,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
		jobs:       make(map[string]*job),
		now:        time.Now,
	}
}

// AutoAssign fills the empty cells of grid for the period. A nil grid means
// the saved grid of the period. Nothing is persisted.
func (s *AssignmentService) AutoAssign(ctx context.Context, period domain.Period, grid domain.Grid) (*AssignmentResult, error) {
	return s.run(ctx, period, grid, "", nil)
}

// StartJob runs AutoAssign in the background. When persist is set, the
// resulting grid is saved once the run completes without cancellation.
func (s *AssignmentService) StartJob(ctx context.Context, period domain.Period, grid domain.Grid, persist bool) (JobStatus, error) {
	if persist && s.saver == nil {
		return JobStatus{}, apperrors.NewPrecondition(apperrors.CodeInternal, "saving assignment results is not configured", http.StatusServiceUnavailable, nil)
	}
	input, err := s.prepare(ctx, period, grid)
	if err != nil {
		return JobStatus{}, err
	}

	id := uuid.NewString()
	jobCtx, cancel := context.WithCancel(context.Background())
	j := &job{
		status: JobStatus{
			ID:        id,
			Period:    period,
			State:     JobRunning,
			Persist:   persist,
			StartedAt: s.now(),
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.jobs[id] = j
	s.mu.Unlock()

	go s.runJob(jobCtx, j, input)
	return s.snapshot(j), nil
}

// Job returns the status of a background assignment.
func (s *AssignmentService) Job(id string) (JobStatus, error) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return JobStatus{}, apperrors.NewNotFound("assignment job", map[string]any{"id": id})
	}
	return s.snapshot(j), nil
}

// CancelJob stops a running assignment. Cells filled before the cancel
// point stay in the partial result; nothing is persisted.
func (s *AssignmentService) CancelJob(id string) (JobStatus, error) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return JobStatus{}, apperrors.NewNotFound("assignment job", map[string]any{"id": id})
	}
	j.cancel()
	<-j.done
	return s.snapshot(j), nil
}

// CancelAll stops every running job and waits for each to finish.
func (s *AssignmentService) CancelAll() {
	s.mu.Lock()
	running := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.status.FinishedAt == nil {
			running = append(running, j)
		}
	}
	s.mu.Unlock()

	for _, j := range running {
		j.cancel()
		<-j.done
	}
	if len(running) > 0 {
		s.logger.Info("cancelled running auto-assign jobs", zap.Int("count", len(running)))
	}
}

// Wait blocks until the job finishes or ctx is done.
func (s *AssignmentService) Wait(ctx context.Context, id string) (JobStatus, error) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		return JobStatus{}, apperrors.NewNotFound("assignment job", map[string]any{"id": id})
	}
	select {
	case <-j.done:
		return s.snapshot(j), nil
	case <-ctx.Done():
		return s.snapshot(j), ctx.Err()
	}
}

type assignInput struct {
	period domain.Period
	grid   domain.Grid
	roster []domain.Engineer
	days   int
}

func (s *AssignmentService) prepare(ctx context.Context, period domain.Period, grid domain.Grid) (assignInput, error) {
	days, err := validatePeriod(period)
	if err != nil {
		return assignInput{}, err
	}
	roster, err := s.engineers.List(ctx)
	if err != nil {
		return assignInput{}, apperrors.MapError(err)
	}
	if len(roster) == 0 {
		return assignInput{}, noEngineers()
	}

	if grid == nil {
		saved, _, err := s.schedules.Get(ctx, period)
		if err != nil {
			return assignInput{}, apperrors.MapError(err)
		}
		grid = saved
	}
	normalized, problems := normalizeGrid(grid, gridRules{workplaces: s.workplaces, daysInMonth: days})
	if len(problems) > 0 {
		return assignInput{}, invalidGrid(problems)
	}
	return assignInput{period: period, grid: normalized, roster: roster, days: days}, nil
}

func (s *AssignmentService) run(ctx context.Context, period domain.Period, grid domain.Grid, jobID string, progress func(engine.Progress)) (*AssignmentResult, error) {
	input, err := s.prepare(ctx, period, grid)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, input, jobID, progress)
}

func (s *AssignmentService) execute(ctx context.Context, input assignInput, jobID string, progress func(engine.Progress)) (*AssignmentResult, error) {
	opts := []engine.Option{engine.WithChunkDays(s.chunkDays)}
	if progress != nil {
		opts = append(opts, engine.WithProgress(progress))
	}

	start := s.now()
	out, report, err := engine.AutoAssign(ctx, input.roster, input.grid, s.workplaces, input.days, opts...)
	result := &AssignmentResult{Period: input.period, Grid: out, Report: report, Summary: report.Summary()}
	if err != nil {
		if errors.Is(err, engine.ErrNoEngineers) {
			return nil, noEngineers()
		}
		return result, err
	}

	s.metrics.RecordAssignments(report.Total)
	s.logger.Info("auto-assign completed",
		zap.String("period", input.period.Key()),
		zap.Int("assigned", report.Total),
		zap.Int("unfilled", report.Unfilled),
		zap.Strings("skipped_workplaces", report.SkippedWorkplaces),
		zap.Duration("took", s.now().Sub(start)),
	)
	publish(ctx, s.dispatcher, s.logger, events.EventAutoAssignCompleted, input.period.Key(), events.AutoAssignCompletedPayload{
		JobID:    jobID,
		Total:    report.Total,
		Unfilled: report.Unfilled,
		Counts:   report.Counts,
	})
	return result, nil
}

func (s *AssignmentService) runJob(ctx context.Context, j *job, input assignInput) {
	defer close(j.done)
	defer j.cancel()

	result, err := s.execute(ctx, input, j.status.ID, func(p engine.Progress) {
		s.mu.Lock()
		j.status.Progress = p
		s.mu.Unlock()
	})

	state := JobCompleted
	var errMsg string
	switch {
	case err != nil && errors.Is(err, context.Canceled):
		state = JobCancelled
		s.logger.Info("auto-assign job cancelled", zap.String("job_id", j.status.ID))
	case err != nil:
		state = JobFailed
		errMsg = err.Error()
		s.logger.Error("auto-assign job failed", zap.String("job_id", j.status.ID), zap.Error(err))
	case j.status.Persist:
		if _, err := s.saver.Save(context.Background(), input.period, result.Grid); err != nil {
			state = JobFailed
			errMsg = err.Error()
			s.logger.Error("auto-assign job save failed", zap.String("job_id", j.status.ID), zap.Error(err))
		}
	}

	finished := s.now()
	s.mu.Lock()
	j.status.State = state
	j.status.Result = result
	j.status.Error = errMsg
	j.status.FinishedAt = &finished
	s.mu.Unlock()
}

func (s *AssignmentService) snapshot(j *job) JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return j.status
}

func (s *AssignmentService) pruneLocked() {
	cutoff := s.now().Add(-finishedJobRetention)
	for id, j := range s.jobs {
		if j.status.FinishedAt != nil && j.status.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
}

func noEngineers() error {
	return apperrors.NewPrecondition(apperrors.CodeNoEngineers, "add engineers before auto-assigning shifts", http.StatusConflict, nil)
}
