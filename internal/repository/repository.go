package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EngineerRepository persists the roster. List returns engineers in the order
// they were first created; updates keep an engineer's position.
type EngineerRepository interface {
	List(ctx context.Context) ([]domain.Engineer, error)
	Get(ctx context.Context, name string) (*domain.Engineer, error)
	Upsert(ctx context.Context, engineer *domain.Engineer) error
	Delete(ctx context.Context, name string) error
}

// ScheduleRepository persists one grid per period.
type ScheduleRepository interface {
	// Get returns an empty grid and found=false when nothing was saved for the period.
	Get(ctx context.Context, period domain.Period) (grid domain.Grid, found bool, err error)
	// Save replaces the whole grid of the period.
	Save(ctx context.Context, period domain.Period, grid domain.Grid) error
}

type cell struct {
	workplace string
	day       int
	shift     domain.Shift
	engineer  string
}

// flatten lists the populated cells of grid in a stable order.
func flatten(grid domain.Grid) []cell {
	var cells []cell
	for _, wp := range grid.Workplaces() {
		days := grid[wp]
		dayKeys := make([]int, 0, len(days))
		for day := range days {
			dayKeys = append(dayKeys, day)
		}
		sort.Ints(dayKeys)
		for _, day := range dayKeys {
			for _, shift := range domain.Shifts {
				if name := days[day][shift]; name != "" {
					cells = append(cells, cell{workplace: wp, day: day, shift: shift, engineer: name})
				}
			}
		}
	}
	return cells
}

func encodeEngineer(e *domain.Engineer) (workplaces, limitations []byte, err error) {
	wps := e.Workplaces
	if wps == nil {
		wps = []string{}
	}
	workplaces, err = json.Marshal(wps)
	if err != nil {
		return nil, nil, fmt.Errorf("encode workplaces: %w", err)
	}
	lim := e.Limitations
	if lim == nil {
		lim = domain.Limitations{}
	}
	limitations, err = json.Marshal(lim)
	if err != nil {
		return nil, nil, fmt.Errorf("encode limitations: %w", err)
	}
	return workplaces, limitations, nil
}

func decodeEngineer(name string, workplaces, limitations []byte) (domain.Engineer, error) {
	e := domain.Engineer{Name: name, Workplaces: []string{}, Limitations: domain.Limitations{}}
	if len(workplaces) > 0 {
		if err := json.Unmarshal(workplaces, &e.Workplaces); err != nil {
			return e, fmt.Errorf("decode workplaces of %s: %w", name, err)
		}
	}
	if len(limitations) > 0 {
		if err := json.Unmarshal(limitations, &e.Limitations); err != nil {
			return e, fmt.Errorf("decode limitations of %s: %w", name, err)
		}
	}
	return e, nil
}
