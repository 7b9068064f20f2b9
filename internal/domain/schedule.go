package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shift identifies one of the three daily slots.
type Shift string

const (
	Shift1 Shift = "shift1"
	Shift2 Shift = "shift2"
	Shift3 Shift = "shift3"
)

// Shifts lists the daily slots in processing order.
var Shifts = []Shift{Shift1, Shift2, Shift3}

// ParseShift accepts "shift1" as well as the display form "Shift 1".
func ParseShift(raw string) (Shift, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, s := range Shifts {
		if string(s) == key {
			return s, true
		}
	}
	return "", false
}

// Label returns the display form of the shift.
func (s Shift) Label() string {
	return "Shift " + strings.TrimPrefix(string(s), "shift")
}

// DaySchedule maps a shift to the assigned engineer name.
type DaySchedule map[Shift]string

// WorkplaceSchedule maps a day of month to its shifts.
type WorkplaceSchedule map[int]DaySchedule

// Grid is the monthly schedule for every workplace.
type Grid map[string]WorkplaceSchedule

// Pattern is a recurring day/shift template for one workplace.
type Pattern map[int]DaySchedule

// Get returns the engineer assigned to a cell, or "" when unassigned.
func (g Grid) Get(workplace string, day int, shift Shift) string {
	return g[workplace][day][shift]
}

// Set assigns name to a cell. An empty name clears it.
func (g Grid) Set(workplace string, day int, shift Shift, name string) {
	if name == "" {
		g.Clear(workplace, day, shift)
		return
	}
	wp, ok := g[workplace]
	if !ok {
		wp = make(WorkplaceSchedule)
		g[workplace] = wp
	}
	ds, ok := wp[day]
	if !ok {
		ds = make(DaySchedule)
		wp[day] = ds
	}
	ds[shift] = name
}

// Clear removes an assignment.
func (g Grid) Clear(workplace string, day int, shift Shift) {
	ds, ok := g[workplace][day]
	if !ok {
		return
	}
	delete(ds, shift)
	if len(ds) == 0 {
		delete(g[workplace], day)
	}
}

// Workplace returns the schedule of one workplace, never nil.
func (g Grid) Workplace(workplace string) WorkplaceSchedule {
	if wp, ok := g[workplace]; ok {
		return wp
	}
	return WorkplaceSchedule{}
}

// Clone returns a deep copy. Empty names are dropped.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for wp, days := range g {
		out[wp] = make(WorkplaceSchedule, len(days))
		for day, shifts := range days {
			for shift, name := range shifts {
				if name != "" {
					out.Set(wp, day, shift, name)
				}
			}
		}
	}
	return out
}

// Filled counts the populated cells.
func (g Grid) Filled() int {
	n := 0
	for _, days := range g {
		for _, shifts := range days {
			for _, name := range shifts {
				if name != "" {
					n++
				}
			}
		}
	}
	return n
}

// Workplaces returns the workplace names present in the grid, sorted.
func (g Grid) Workplaces() []string {
	out := make([]string, 0, len(g))
	for wp := range g {
		out = append(out, wp)
	}
	sort.Strings(out)
	return out
}

// Days returns the pattern days in ascending order.
func (p Pattern) Days() []int {
	days := make([]int, 0, len(p))
	for day := range p {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Len counts the non-empty pattern entries.
func (p Pattern) Len() int {
	n := 0
	for _, shifts := range p {
		for _, name := range shifts {
			if name != "" {
				n++
			}
		}
	}
	return n
}

// ErrInvalidPeriod is returned for an out-of-range year or month.
var ErrInvalidPeriod = errors.New("invalid period")

// Period identifies a calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Validate checks the period bounds.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Key returns the storage key, e.g. "2024-3".
func (p Period) Key() string {
	return fmt.Sprintf("%d-%d", p.Year, p.Month)
}

func (p Period) String() string {
	return p.Key()
}
