package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/calendar"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	apperrors "github.com/spec-kit/shift-scheduler/pkg/util/errorutil"
)

const maxReportedProblems = 20

// gridRules describes what a submitted grid may contain.
type gridRules struct {
	workplaces  []string
	daysInMonth int
	roster      []domain.Engineer
	knownNames  bool
}

// normalizeGrid resolves workplace names, canonicalizes shift keys, and drops
// empty cells. Problems are collected rather than failing on the first one.
// Raw keys that resolve to the same cell with different names are a problem.
func normalizeGrid(grid domain.Grid, rules gridRules) (domain.Grid, []string) {
	out := domain.Grid{}
	var problems []string
	add := func(format string, args ...any) {
		if len(problems) < maxReportedProblems {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	for rawWP, days := range grid {
		wp, ok := domain.ResolveWorkplace(rawWP, rules.workplaces)
		if !ok {
			add("unknown workplace %q", rawWP)
			continue
		}
		for day, shifts := range days {
			if day < 1 || day > rules.daysInMonth {
				add("%s: day %d outside 1..%d", wp, day, rules.daysInMonth)
				continue
			}
			for rawShift, name := range shifts {
				shift, ok := domain.ParseShift(string(rawShift))
				if !ok {
					add("%s day %d: unknown shift %q", wp, day, rawShift)
					continue
				}
				if name == "" {
					continue
				}
				if rules.knownNames {
					if _, ok := domain.FindEngineer(rules.roster, name); !ok {
						add("%s day %d %s: unknown engineer %q", wp, day, shift, name)
						continue
					}
				}
				if existing := out.Get(wp, day, shift); existing != "" && existing != name {
					first, second := min(existing, name), max(existing, name)
					add("%s day %d %s: conflicting engineers %q and %q", wp, day, shift, first, second)
					continue
				}
				out.Set(wp, day, shift, name)
			}
		}
	}
	return out, problems
}

func validatePeriod(period domain.Period) (int, error) {
	if err := period.Validate(); err != nil {
		return 0, apperrors.NewValidationError(err.Error(), map[string]any{"year": period.Year, "month": period.Month})
	}
	return calendar.DaysInMonth(period.Year, period.Month), nil
}

func invalidGrid(problems []string) error {
	return apperrors.NewValidationError("schedule contains invalid cells", map[string]any{"problems": problems})
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, eventType events.EventType, period string, payload any) {
	if dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Period:    period,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
