// Package engine fills and merges monthly shift grids.
package engine

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// DefaultChunkDays is the number of days processed between yield points.
const DefaultChunkDays = 5

// ErrNoEngineers is returned when auto-assignment is requested with an empty roster.
var ErrNoEngineers = errors.New("no engineers in roster")

// AssignmentReport summarizes an auto-assignment run.
type AssignmentReport struct {
	Counts            map[string]int `json:"counts"`
	Total             int            `json:"total"`
	Unfilled          int            `json:"unfilled"`
	SkippedWorkplaces []string       `json:"skipped_workplaces"`
	Cancelled         bool           `json:"cancelled"`
}

// EngineerCount is one row of the assignment summary.
type EngineerCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary returns engineers with at least one assignment, busiest first.
func (r AssignmentReport) Summary() []EngineerCount {
	out := make([]EngineerCount, 0, len(r.Counts))
	for name, count := range r.Counts {
		if count > 0 {
			out = append(out, EngineerCount{Name: name, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Step describes a single assignment decision.
type Step struct {
	Workplace  string
	Day        int
	Shift      domain.Shift
	Engineer   string
	Candidates map[string]int
}

// Progress reports how far a run has advanced.
type Progress struct {
	ChunksDone  int    `json:"chunks_done"`
	ChunksTotal int    `json:"chunks_total"`
	Workplace   string `json:"workplace"`
	LastDay     int    `json:"last_day"`
}

// Chunk is a contiguous day range of one workplace.
type Chunk struct {
	Workplace string
	FirstDay  int
	LastDay   int
}

// Option configures a Run.
type Option func(*Run)

// WithChunkDays sets the chunk size. Values below 1 fall back to DefaultChunkDays.
func WithChunkDays(days int) Option {
	return func(r *Run) {
		if days > 0 {
			r.chunkDays = days
		}
	}
}

// WithProgress registers a callback invoked after every chunk.
func WithProgress(fn func(Progress)) Option {
	return func(r *Run) { r.progress = fn }
}

// WithObserver registers a callback invoked for every assignment.
func WithObserver(fn func(Step)) Option {
	return func(r *Run) { r.observer = fn }
}

type workplacePlan struct {
	name     string
	eligible []domain.Engineer
}

// Run is an in-progress auto-assignment. It owns a private copy of the grid.
type Run struct {
	grid        domain.Grid
	daysInMonth int
	chunkDays   int
	plans       []workplacePlan
	chunks      []Chunk
	next        int
	counters    map[string]int
	report      AssignmentReport
	progress    func(Progress)
	observer    func(Step)
}

// NewRun prepares an auto-assignment over a copy of grid. Workplaces without
// eligible engineers are recorded as skipped and produce no chunks.
func NewRun(roster []domain.Engineer, grid domain.Grid, workplaces []string, daysInMonth int, opts ...Option) (*Run, error) {
	if len(roster) == 0 {
		return nil, ErrNoEngineers
	}
	r := &Run{
		grid:        grid.Clone(),
		daysInMonth: daysInMonth,
		chunkDays:   DefaultChunkDays,
		counters:    make(map[string]int, len(roster)),
		report:      AssignmentReport{SkippedWorkplaces: []string{}},
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, e := range roster {
		r.counters[e.Name] = 0
	}

	for _, wp := range workplaces {
		var eligible []domain.Engineer
		for _, e := range roster {
			if e.CanWork(wp) {
				eligible = append(eligible, e)
			}
		}
		if len(eligible) == 0 {
			r.report.SkippedWorkplaces = append(r.report.SkippedWorkplaces, wp)
			continue
		}
		r.plans = append(r.plans, workplacePlan{name: wp, eligible: eligible})
		for first := 1; first <= daysInMonth; first += r.chunkDays {
			last := first + r.chunkDays - 1
			if last > daysInMonth {
				last = daysInMonth
			}
			r.chunks = append(r.chunks, Chunk{Workplace: wp, FirstDay: first, LastDay: last})
		}
	}
	return r, nil
}

// Chunks returns the planned chunks in processing order.
func (r *Run) Chunks() []Chunk {
	return append([]Chunk(nil), r.chunks...)
}

// Done reports whether every chunk was processed.
func (r *Run) Done() bool {
	return r.next >= len(r.chunks)
}

// Next processes one chunk. It returns false once nothing is left.
func (r *Run) Next() bool {
	if r.Done() {
		return false
	}
	chunk := r.chunks[r.next]
	plan := r.planFor(chunk.Workplace)
	for day := chunk.FirstDay; day <= chunk.LastDay; day++ {
		for _, shift := range domain.Shifts {
			r.fill(plan, day, shift)
		}
	}
	r.next++
	if r.progress != nil {
		r.progress(r.Progress())
	}
	return true
}

// Progress returns the current position of the run.
func (r *Run) Progress() Progress {
	p := Progress{ChunksDone: r.next, ChunksTotal: len(r.chunks)}
	if r.next > 0 {
		last := r.chunks[r.next-1]
		p.Workplace = last.Workplace
		p.LastDay = last.LastDay
	}
	return p
}

// Result returns the grid and report as of the last processed chunk.
func (r *Run) Result() (domain.Grid, AssignmentReport) {
	report := r.report
	report.Counts = make(map[string]int, len(r.counters))
	for name, count := range r.counters {
		report.Counts[name] = count
	}
	report.SkippedWorkplaces = append([]string{}, r.report.SkippedWorkplaces...)
	return r.grid, report
}

func (r *Run) planFor(workplace string) workplacePlan {
	for _, p := range r.plans {
		if p.name == workplace {
			return p
		}
	}
	return workplacePlan{name: workplace}
}

func (r *Run) fill(plan workplacePlan, day int, shift domain.Shift) {
	if r.grid.Get(plan.name, day, shift) != "" {
		return
	}

	var (
		chosen     string
		best       int
		found      bool
		candidates map[string]int
	)
	if r.observer != nil {
		candidates = make(map[string]int, len(plan.eligible))
	}
	for _, e := range plan.eligible {
		if e.Blocked(day, shift) {
			continue
		}
		count := r.counters[e.Name]
		if candidates != nil {
			candidates[e.Name] = count
		}
		// strict comparison keeps the earliest engineer on ties
		if !found || count < best {
			chosen, best, found = e.Name, count, true
		}
	}
	if !found {
		r.report.Unfilled++
		return
	}

	r.grid.Set(plan.name, day, shift, chosen)
	r.counters[chosen]++
	r.report.Total++
	if r.observer != nil {
		r.observer(Step{Workplace: plan.name, Day: day, Shift: shift, Engineer: chosen, Candidates: candidates})
	}
}

// AutoAssign fills every empty cell of the given workplaces with the least
// loaded eligible and available engineer. Existing assignments are never
// replaced and the input grid is not modified. The context is checked between
// chunks; on cancellation the partially filled grid is returned with
// Cancelled set and the context error.
func AutoAssign(ctx context.Context, roster []domain.Engineer, grid domain.Grid, workplaces []string, daysInMonth int, opts ...Option) (domain.Grid, AssignmentReport, error) {
	run, err := NewRun(roster, grid, workplaces, daysInMonth, opts...)
	if err != nil {
		return grid, AssignmentReport{Counts: map[string]int{}, SkippedWorkplaces: []string{}}, err
	}
	for !run.Done() {
		if err := ctx.Err(); err != nil {
			out, report := run.Result()
			report.Cancelled = true
			return out, report, err
		}
		run.Next()
		runtime.Gosched()
	}
	out, report := run.Result()
	return out, report, nil
}
