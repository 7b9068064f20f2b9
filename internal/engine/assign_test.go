package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

func twoEngineerRoster() []domain.Engineer {
	return []domain.Engineer{
		{Name: "A", Workplaces: []string{"X"}},
		{Name: "B", Workplaces: []string{"X"}, Limitations: domain.Limitations{3: {domain.Shift1}}},
	}
}

func TestAutoAssignBalancesAndRespectsLimitations(t *testing.T) {
	grid, report, err := AutoAssign(context.Background(), twoEngineerRoster(), domain.Grid{}, []string{"X"}, 3)
	require.NoError(t, err)

	want := map[int]domain.DaySchedule{
		1: {domain.Shift1: "A", domain.Shift2: "B", domain.Shift3: "A"},
		2: {domain.Shift1: "B", domain.Shift2: "A", domain.Shift3: "B"},
		3: {domain.Shift1: "A", domain.Shift2: "B", domain.Shift3: "A"},
	}
	for day, shifts := range want {
		for shift, name := range shifts {
			assert.Equal(t, name, grid.Get("X", day, shift), "day %d %s", day, shift)
		}
	}
	assert.Equal(t, 9, report.Total)
	assert.Equal(t, map[string]int{"A": 5, "B": 4}, report.Counts)
	assert.Zero(t, report.Unfilled)
	assert.False(t, report.Cancelled)
	assert.Equal(t, []EngineerCount{{Name: "A", Count: 5}, {Name: "B", Count: 4}}, report.Summary())
}

func TestAutoAssignEmptyRoster(t *testing.T) {
	in := domain.Grid{"X": {1: {domain.Shift1: "Z"}}}
	out, report, err := AutoAssign(context.Background(), nil, in, []string{"X"}, 30)
	require.ErrorIs(t, err, ErrNoEngineers)
	assert.Equal(t, in, out)
	assert.Zero(t, report.Total)
}

func TestAutoAssignNeverOverwritesFilledCells(t *testing.T) {
	full := domain.Grid{}
	for day := 1; day <= 28; day++ {
		for _, s := range domain.Shifts {
			full.Set("X", day, s, "Manual")
		}
	}
	out, report, err := AutoAssign(context.Background(), twoEngineerRoster(), full, []string{"X"}, 28)
	require.NoError(t, err)
	assert.Equal(t, full, out)
	assert.Zero(t, report.Total)
	assert.Zero(t, report.Unfilled)
	assert.Equal(t, map[string]int{"A": 0, "B": 0}, report.Counts)
}

func TestAutoAssignDoesNotMutateInput(t *testing.T) {
	in := domain.Grid{"X": {2: {domain.Shift2: "Manual"}}}
	out, _, err := AutoAssign(context.Background(), twoEngineerRoster(), in, []string{"X"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, in.Filled())
	assert.Equal(t, 9, out.Filled())
	assert.Equal(t, "Manual", out.Get("X", 2, domain.Shift2))
}

func TestAutoAssignSkipsWorkplacesWithoutEligibleEngineers(t *testing.T) {
	out, report, err := AutoAssign(context.Background(), twoEngineerRoster(), domain.Grid{}, []string{"Y", "X"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, report.SkippedWorkplaces)
	assert.Empty(t, out.Workplace("Y"))
	assert.Equal(t, 6, report.Total)
}

func TestAutoAssignLeavesBlockedCellsEmpty(t *testing.T) {
	roster := []domain.Engineer{
		{Name: "A", Workplaces: []string{"X"}, Limitations: domain.Limitations{1: {domain.Shift3}}},
	}
	out, report, err := AutoAssign(context.Background(), roster, domain.Grid{}, []string{"X"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "", out.Get("X", 1, domain.Shift3))
	assert.Equal(t, 1, report.Unfilled)
	assert.Equal(t, 2, report.Total)
}

func largeRoster() []domain.Engineer {
	return []domain.Engineer{
		{Name: "Ana", Workplaces: []string{"Nodal", "Studio Press"}, Limitations: domain.Limitations{1: {domain.Shift1, domain.Shift2}, 10: {domain.Shift3}}},
		{Name: "Ben", Workplaces: []string{"Nodal"}},
		{Name: "Cy", Workplaces: []string{"Studio Press", "Engineer Room"}, Limitations: domain.Limitations{5: {domain.Shift1, domain.Shift2, domain.Shift3}}},
		{Name: "Dee", Workplaces: []string{"Engineer Room", "Nodal"}, Limitations: domain.Limitations{20: {domain.Shift2}}},
		{Name: "Eli", Workplaces: []string{"Studio Press"}},
	}
}

func TestAutoAssignInvariants(t *testing.T) {
	roster := largeRoster()
	workplaces := []string{"Nodal", "Studio Press", "Engineer Room", "Studio Hispan"}
	in := domain.Grid{"Nodal": {4: {domain.Shift2: "Ben"}}}

	var steps []Step
	out, report, err := AutoAssign(context.Background(), roster, in, workplaces, 31, WithObserver(func(s Step) {
		steps = append(steps, s)
	}))
	require.NoError(t, err)
	require.Len(t, steps, report.Total)

	for _, s := range steps {
		e, ok := domain.FindEngineer(roster, s.Engineer)
		require.True(t, ok)
		assert.True(t, e.CanWork(s.Workplace), "eligibility %+v", s)
		assert.False(t, e.Blocked(s.Day, s.Shift), "limitation %+v", s)
		chosen := s.Candidates[s.Engineer]
		for name, count := range s.Candidates {
			assert.LessOrEqual(t, chosen, count, "load balance at %+v against %s", s, name)
		}
	}

	for wp, days := range out {
		for day, shifts := range days {
			for shift, name := range shifts {
				if in.Get(wp, day, shift) != "" {
					continue
				}
				e, _ := domain.FindEngineer(roster, name)
				assert.True(t, e.CanWork(wp))
				assert.False(t, e.Blocked(day, shift))
			}
		}
	}
	assert.Equal(t, "Ben", out.Get("Nodal", 4, domain.Shift2))
	assert.Equal(t, []string{"Studio Hispan"}, report.SkippedWorkplaces)
}

func TestAutoAssignChunkBoundariesDoNotChangeOutput(t *testing.T) {
	roster := largeRoster()
	workplaces := []string{"Nodal", "Studio Press", "Engineer Room"}
	baseline, baseReport, err := AutoAssign(context.Background(), roster, domain.Grid{}, workplaces, 30, WithChunkDays(30))
	require.NoError(t, err)

	for _, size := range []int{1, 2, 3, 7, 0} {
		got, report, err := AutoAssign(context.Background(), roster, domain.Grid{}, workplaces, 30, WithChunkDays(size))
		require.NoError(t, err)
		assert.Equal(t, baseline, got, "chunk size %d", size)
		assert.Equal(t, baseReport, report, "chunk size %d", size)
	}
}

func TestAutoAssignIsDeterministic(t *testing.T) {
	roster := largeRoster()
	workplaces := []string{"Nodal", "Studio Press", "Engineer Room"}
	first, _, err := AutoAssign(context.Background(), roster, domain.Grid{}, workplaces, 31)
	require.NoError(t, err)
	second, _, err := AutoAssign(context.Background(), roster, domain.Grid{}, workplaces, 31)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunChunksStayWithinWorkplace(t *testing.T) {
	run, err := NewRun(twoEngineerRoster(), domain.Grid{}, []string{"X", "Y", "X2"}, 12, WithChunkDays(5))
	require.NoError(t, err)
	assert.Equal(t, []Chunk{
		{Workplace: "X", FirstDay: 1, LastDay: 5},
		{Workplace: "X", FirstDay: 6, LastDay: 10},
		{Workplace: "X", FirstDay: 11, LastDay: 12},
	}, run.Chunks())

	var seen []Progress
	run.progress = func(p Progress) { seen = append(seen, p) }
	for run.Next() {
	}
	assert.True(t, run.Done())
	require.Len(t, seen, 3)
	assert.Equal(t, Progress{ChunksDone: 3, ChunksTotal: 3, Workplace: "X", LastDay: 12}, seen[2])
}

func TestAutoAssignCancellationKeepsPartialProgress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, report, err := AutoAssign(ctx, twoEngineerRoster(), domain.Grid{}, []string{"X"}, 30,
		WithChunkDays(5),
		WithProgress(func(p Progress) {
			if p.ChunksDone == 1 {
				cancel()
			}
		}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, report.Cancelled)
	assert.Equal(t, 15, report.Total)
	assert.Equal(t, 15, out.Filled())
	for day := 1; day <= 5; day++ {
		for _, s := range domain.Shifts {
			assert.NotEmpty(t, out.Get("X", day, s))
		}
	}
	assert.Empty(t, out.Get("X", 6, domain.Shift1))
}
