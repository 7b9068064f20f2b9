package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/engine"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/observability"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	"github.com/spec-kit/shift-scheduler/internal/spreadsheet"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// PatternService overlays uploaded patterns onto a grid.
type PatternService struct {
	engineers  repository.EngineerRepository
	schedules  repository.ScheduleRepository
	workplaces []string
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// PatternDependencies bundles collaborators of the pattern service.
type PatternDependencies struct {
	EngineerRepo repository.EngineerRepository
	ScheduleRepo repository.ScheduleRepository
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// PatternRequest carries an uploaded pattern and where to apply it. A nil
// Grid means the saved grid of the period.
type PatternRequest struct {
	Period    domain.Period
	Workplace string
	FileName  string
	File      io.Reader
	Grid      domain.Grid
	Options   engine.PatternOptions
}

// PatternResult is the reconciled grid and its report.
type PatternResult struct {
	Period    domain.Period               `json:"period"`
	Workplace string                      `json:"workplace"`
	Grid      domain.Grid                 `json:"workplaces"`
	Report    engine.ReconciliationReport `json:"report"`
}

// NewPatternService constructs the service.
func NewPatternService(cfg config.SchedulerConfig, deps PatternDependencies) *PatternService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternService{
		engineers:  deps.EngineerRepo,
		schedules:  deps.ScheduleRepo,
		workplaces: cfg.Workplaces,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// Apply decodes the uploaded pattern and overlays it onto the grid of one
// workplace. The result is returned for review and is not persisted.
func (s *PatternService) Apply(ctx context.Context, req PatternRequest) (*PatternResult, error) {
	days, err := validatePeriod(req.Period)
	if err != nil {
		return nil, err
	}
	workplace, ok := domain.ResolveWorkplace(req.Workplace, s.workplaces)
	if !ok {
		return nil, apperrors.NewValidationError("unknown workplace", map[string]any{"workplace": req.Workplace, "known": s.workplaces})
	}
	if req.File == nil {
		return nil, apperrors.NewValidationError("pattern file required", nil)
	}

	pattern, err := spreadsheet.DecodePattern(req.FileName, req.File)
	if err != nil {
		s.logger.Warn("pattern decode failed", zap.String("file", req.FileName), zap.Error(err))
		return nil, apperrors.NewPatternDecodeError(err)
	}

	grid := req.Grid
	if grid == nil {
		saved, _, err := s.schedules.Get(ctx, req.Period)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		grid = saved
	}
	normalized, problems := normalizeGrid(grid, gridRules{workplaces: s.workplaces, daysInMonth: days})
	if len(problems) > 0 {
		return nil, invalidGrid(problems)
	}

	roster, err := s.engineers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	out, report := engine.ApplyPattern(pattern, workplace, days, normalized, roster, req.Options)

	s.metrics.RecordPatternApplied(report.Applied)
	s.logger.Info("pattern applied",
		zap.String("period", req.Period.Key()),
		zap.String("workplace", workplace),
		zap.Int("applied", report.Applied),
		zap.Int("skipped_limitations", report.SkippedDueToLimitations),
		zap.Int("skipped_existing", report.SkippedDueToExisting),
		zap.Strings("unknown_engineers", report.UnknownEngineers),
	)
	publish(ctx, s.dispatcher, s.logger, events.EventPatternApplied, req.Period.Key(), events.PatternAppliedPayload{
		Workplace:               workplace,
		Applied:                 report.Applied,
		SkippedDueToLimitations: report.SkippedDueToLimitations,
		SkippedDueToExisting:    report.SkippedDueToExisting,
	})

	return &PatternResult{Period: req.Period, Workplace: workplace, Grid: out, Report: report}, nil
}
