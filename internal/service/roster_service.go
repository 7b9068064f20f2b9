package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

// RosterService manages engineers.
type RosterService struct {
	engineers  repository.EngineerRepository
	workplaces []string
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// RosterDependencies bundles collaborators of the roster service.
type RosterDependencies struct {
	EngineerRepo repository.EngineerRepository
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// EngineerInput describes an engineer as submitted by a client. Limitation
// day keys arrive as strings and are normalized on save.
type EngineerInput struct {
	Name        string
	Workplaces  []string
	Limitations map[string][]string
}

// NewRosterService constructs the service.
func NewRosterService(cfg config.SchedulerConfig, deps RosterDependencies) *RosterService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		engineers:  deps.EngineerRepo,
		workplaces: cfg.Workplaces,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns the roster in roster order.
func (s *RosterService) List(ctx context.Context) ([]domain.Engineer, error) {
	list, err := s.engineers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Get fetches one engineer.
func (s *RosterService) Get(ctx context.Context, name string) (*domain.Engineer, error) {
	e, err := s.engineers.Get(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("engineer", map[string]any{"name": name})
		}
		return nil, apperrors.MapError(err)
	}
	return e, nil
}

// Save creates the engineer or replaces the one with the same name. It
// reports whether a new engineer was created.
func (s *RosterService) Save(ctx context.Context, input EngineerInput) (*domain.Engineer, bool, error) {
	engineer, err := s.validate(input)
	if err != nil {
		return nil, false, err
	}

	created := false
	if _, err := s.engineers.Get(ctx, engineer.Name); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperrors.MapError(err)
		}
		created = true
	}
	if err := s.engineers.Upsert(ctx, engineer); err != nil {
		return nil, false, apperrors.MapError(err)
	}

	s.logger.Info("engineer saved", zap.String("name", engineer.Name), zap.Bool("created", created))
	publish(ctx, s.dispatcher, s.logger, events.EventEngineerSaved, "", events.EngineerPayload{
		Name:       engineer.Name,
		Workplaces: engineer.Workplaces,
		Created:    created,
	})
	return engineer, created, nil
}

// Delete removes an engineer. Existing schedules keep the name.
func (s *RosterService) Delete(ctx context.Context, name string) error {
	if err := s.engineers.Delete(ctx, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("engineer", map[string]any{"name": name})
		}
		return apperrors.MapError(err)
	}
	s.logger.Info("engineer deleted", zap.String("name", name))
	publish(ctx, s.dispatcher, s.logger, events.EventEngineerDeleted, "", events.EngineerPayload{Name: name})
	return nil
}

func (s *RosterService) validate(input EngineerInput) (*domain.Engineer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("engineer name required", nil)
	}

	var workplaces []string
	seen := map[string]struct{}{}
	for _, raw := range input.Workplaces {
		wp, ok := domain.ResolveWorkplace(raw, s.workplaces)
		if !ok {
			return nil, apperrors.NewValidationError("unknown workplace", map[string]any{"workplace": raw, "known": s.workplaces})
		}
		if _, dup := seen[wp]; dup {
			continue
		}
		seen[wp] = struct{}{}
		workplaces = append(workplaces, wp)
	}
	if len(workplaces) == 0 {
		return nil, apperrors.NewValidationError("select at least one workplace", nil)
	}

	limitations, err := domain.ParseLimitations(input.Limitations)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	return &domain.Engineer{Name: name, Workplaces: workplaces, Limitations: limitations}, nil
}
