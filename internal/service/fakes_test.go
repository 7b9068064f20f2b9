package service

import (
	"context"
	"sync"

	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/events"
	"github.com/spec-kit/shift-scheduler/internal/repository"
)

type memEngineers struct {
	mu   sync.Mutex
	list []domain.Engineer
}

func (m *memEngineers) List(context.Context) ([]domain.Engineer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Engineer(nil), m.list...), nil
}

func (m *memEngineers) Get(_ context.Context, name string) (*domain.Engineer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := domain.FindEngineer(m.list, name); ok {
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memEngineers) Upsert(_ context.Context, e *domain.Engineer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].Name == e.Name {
			m.list[i] = *e
			return nil
		}
	}
	m.list = append(m.list, *e)
	return nil
}

func (m *memEngineers) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.list {
		if m.list[i].Name == name {
			m.list = append(m.list[:i], m.list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memSchedules struct {
	mu    sync.Mutex
	grids map[string]domain.Grid
}

func newMemSchedules() *memSchedules {
	return &memSchedules{grids: map[string]domain.Grid{}}
}

func (m *memSchedules) Get(_ context.Context, period domain.Period) (domain.Grid, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.grids[period.Key()]
	if !ok {
		return domain.Grid{}, false, nil
	}
	return g.Clone(), true, nil
}

func (m *memSchedules) Save(_ context.Context, period domain.Period, grid domain.Grid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grids[period.Key()] = grid.Clone()
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) Subscribe(events.EventType, events.EventHandler) {}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
