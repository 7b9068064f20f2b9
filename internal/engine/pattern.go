package engine

import (
	"sort"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// PatternOptions controls how a pattern is merged into a grid.
type PatternOptions struct {
	OverrideExisting   bool `json:"override_existing"`
	RespectLimitations bool `json:"respect_limitations"`
}

// ReconciliationReport counts the outcome of a pattern merge. Entries that name
// an unknown engineer are listed in UnknownEngineers and counted nowhere else.
type ReconciliationReport struct {
	Applied                 int      `json:"applied"`
	SkippedDueToLimitations int      `json:"skipped_due_to_limitations"`
	SkippedDueToExisting    int      `json:"skipped_due_to_existing"`
	UnknownEngineers        []string `json:"unknown_engineers"`
}

// ApplyPattern merges pattern into a copy of grid for one workplace.
// Entries with an empty name or targeting a day outside 1..daysInMonth or an
// unknown shift are ignored. Workplace eligibility of the named engineer is
// not checked; patterns are taken to be scoped to their workplace already.
func ApplyPattern(pattern domain.Pattern, workplace string, daysInMonth int, grid domain.Grid, roster []domain.Engineer, opts PatternOptions) (domain.Grid, ReconciliationReport) {
	out := grid.Clone()
	report := ReconciliationReport{UnknownEngineers: []string{}}
	unknown := map[string]struct{}{}

	for _, day := range pattern.Days() {
		entries := pattern[day]
		for _, shift := range patternShifts(entries) {
			name := entries[shift]
			if name == "" {
				continue
			}
			if !schedulable(day, shift, daysInMonth) {
				continue
			}
			if out.Get(workplace, day, shift) != "" && !opts.OverrideExisting {
				report.SkippedDueToExisting++
				continue
			}
			engineer, ok := domain.FindEngineer(roster, name)
			if !ok {
				unknown[name] = struct{}{}
				continue
			}
			if opts.RespectLimitations && engineer.Blocked(day, shift) {
				report.SkippedDueToLimitations++
				continue
			}
			out.Set(workplace, day, shift, engineer.Name)
			report.Applied++
		}
	}

	for name := range unknown {
		report.UnknownEngineers = append(report.UnknownEngineers, name)
	}
	sort.Strings(report.UnknownEngineers)
	return out, report
}

// patternShifts orders the known shifts first, then unrecognized keys sorted.
func patternShifts(entries domain.DaySchedule) []domain.Shift {
	out := make([]domain.Shift, 0, len(entries))
	for _, s := range domain.Shifts {
		if _, ok := entries[s]; ok {
			out = append(out, s)
		}
	}
	var extra []domain.Shift
	for s := range entries {
		if !isCanonical(s) {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func isCanonical(s domain.Shift) bool {
	for _, known := range domain.Shifts {
		if s == known {
			return true
		}
	}
	return false
}

func schedulable(day int, shift domain.Shift, daysInMonth int) bool {
	return day >= 1 && day <= daysInMonth && isCanonical(shift)
}
