package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

func patternRoster() []domain.Engineer {
	return []domain.Engineer{
		{Name: "C", Workplaces: []string{"Nodal"}, Limitations: domain.Limitations{6: {domain.Shift1}}},
		{Name: "D", Workplaces: []string{"Nodal"}},
	}
}

func TestApplyPatternKeepsExistingWithoutOverride(t *testing.T) {
	grid := domain.Grid{"Nodal": {5: {domain.Shift2: "D"}}}
	pattern := domain.Pattern{5: {domain.Shift2: "C"}}

	out, report := ApplyPattern(pattern, "Nodal", 30, grid, patternRoster(), PatternOptions{})
	assert.Equal(t, 1, report.SkippedDueToExisting)
	assert.Zero(t, report.Applied)
	assert.Zero(t, report.SkippedDueToLimitations)
	assert.Equal(t, "D", out.Get("Nodal", 5, domain.Shift2))
}

func TestApplyPatternOverridesWhenAsked(t *testing.T) {
	grid := domain.Grid{"Nodal": {5: {domain.Shift2: "D"}}}
	pattern := domain.Pattern{5: {domain.Shift2: "C"}}

	out, report := ApplyPattern(pattern, "Nodal", 30, grid, patternRoster(), PatternOptions{OverrideExisting: true})
	assert.Equal(t, 1, report.Applied)
	assert.Zero(t, report.SkippedDueToExisting)
	assert.Equal(t, "C", out.Get("Nodal", 5, domain.Shift2))
	assert.Equal(t, "D", grid.Get("Nodal", 5, domain.Shift2), "input grid untouched")
}

func TestApplyPatternUnknownEngineerIsNotCounted(t *testing.T) {
	pattern := domain.Pattern{1: {domain.Shift1: "Z", domain.Shift2: "D"}}
	out, report := ApplyPattern(pattern, "Nodal", 30, domain.Grid{}, patternRoster(), PatternOptions{RespectLimitations: true})
	assert.Equal(t, 1, report.Applied)
	assert.Zero(t, report.SkippedDueToExisting)
	assert.Zero(t, report.SkippedDueToLimitations)
	assert.Equal(t, []string{"Z"}, report.UnknownEngineers)
	assert.Equal(t, "", out.Get("Nodal", 1, domain.Shift1))
}

func TestApplyPatternLimitationGating(t *testing.T) {
	pattern := domain.Pattern{6: {domain.Shift1: "C", domain.Shift2: "C"}}

	out, report := ApplyPattern(pattern, "Nodal", 30, domain.Grid{}, patternRoster(), PatternOptions{RespectLimitations: true})
	assert.Equal(t, 1, report.SkippedDueToLimitations)
	assert.Equal(t, 1, report.Applied)
	assert.Equal(t, "", out.Get("Nodal", 6, domain.Shift1))

	out, report = ApplyPattern(pattern, "Nodal", 30, domain.Grid{}, patternRoster(), PatternOptions{})
	assert.Zero(t, report.SkippedDueToLimitations)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, "C", out.Get("Nodal", 6, domain.Shift1))
}

func TestApplyPatternIgnoresEmptyAndUnschedulableEntries(t *testing.T) {
	pattern := domain.Pattern{
		1:  {domain.Shift1: ""},
		0:  {domain.Shift1: "D"},
		31: {domain.Shift1: "D"},
		2:  {domain.Shift("shift4"): "D"},
	}
	out, report := ApplyPattern(pattern, "Nodal", 30, domain.Grid{}, patternRoster(), PatternOptions{})
	assert.Equal(t, ReconciliationReport{UnknownEngineers: []string{}}, report)
	assert.Zero(t, out.Filled())
}

func TestApplyPatternNonDestructive(t *testing.T) {
	grid := domain.Grid{
		"Nodal": {
			1: {domain.Shift1: "D", domain.Shift3: "D"},
			2: {domain.Shift2: "C"},
		},
		"Other": {1: {domain.Shift1: "X"}},
	}
	pattern := domain.Pattern{}
	for day := 1; day <= 3; day++ {
		pattern[day] = domain.DaySchedule{domain.Shift1: "C", domain.Shift2: "D", domain.Shift3: "C"}
	}

	out, report := ApplyPattern(pattern, "Nodal", 28, grid, patternRoster(), PatternOptions{})
	for wp, days := range grid {
		for day, shifts := range days {
			for shift, name := range shifts {
				assert.Equal(t, name, out.Get(wp, day, shift))
			}
		}
	}
	assert.Equal(t, 3, report.SkippedDueToExisting)
	assert.Equal(t, 6, report.Applied)
	assert.Equal(t, pattern.Len(), report.Applied+report.SkippedDueToExisting)
}

func TestApplyPatternExistingCheckPrecedesNameResolution(t *testing.T) {
	grid := domain.Grid{"Nodal": {3: {domain.Shift1: "D"}}}
	pattern := domain.Pattern{3: {domain.Shift1: "Nobody"}}
	_, report := ApplyPattern(pattern, "Nodal", 30, grid, patternRoster(), PatternOptions{})
	assert.Equal(t, 1, report.SkippedDueToExisting)
	assert.Empty(t, report.UnknownEngineers)
}
