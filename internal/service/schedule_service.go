package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// ScheduleService loads and saves monthly grids.
type ScheduleService struct {
	schedules  repository.ScheduleRepository
	engineers  repository.EngineerRepository
	workplaces []string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ScheduleDependencies bundles collaborators of the schedule service.
type ScheduleDependencies struct {
	ScheduleRepo repository.ScheduleRepository
	EngineerRepo repository.EngineerRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(cfg config.SchedulerConfig, deps ScheduleDependencies) *ScheduleService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		schedules:  deps.ScheduleRepo,
		engineers:  deps.EngineerRepo,
		workplaces: cfg.Workplaces,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Load returns the saved grid of a period, or an empty grid when none exists.
func (s *ScheduleService) Load(ctx context.Context, period domain.Period) (domain.Grid, bool, error) {
	if _, err := validatePeriod(period); err != nil {
		return nil, false, err
	}
	grid, found, err := s.schedules.Get(ctx, period)
	if err != nil {
		return nil, false, apperrors.MapError(err)
	}
	return grid, found, nil
}

// Save validates grid and replaces the saved grid of the period. Every named
// engineer must be on the roster.
func (s *ScheduleService) Save(ctx context.Context, period domain.Period, grid domain.Grid) (domain.Grid, error) {
	days, err := validatePeriod(period)
	if err != nil {
		return nil, err
	}
	roster, err := s.engineers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	normalized, problems := normalizeGrid(grid, gridRules{
		workplaces:  s.workplaces,
		daysInMonth: days,
		roster:      roster,
		knownNames:  true,
	})
	if len(problems) > 0 {
		return nil, invalidGrid(problems)
	}

	if err := s.schedules.Save(ctx, period, normalized); err != nil {
		return nil, apperrors.MapError(err)
	}

	filled := normalized.Filled()
	s.logger.Info("schedule saved", zap.String("period", period.Key()), zap.Int("filled_cells", filled))
	publish(ctx, s.dispatcher, s.logger, events.EventScheduleSaved, period.Key(), events.ScheduleSavedPayload{FilledCells: filled})
	return normalized, nil
}
