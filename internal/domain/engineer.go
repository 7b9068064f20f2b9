package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDay is the largest day-of-month a limitation may reference.
const MaxDay = 31

// ErrInvalidLimitation is returned when a limitation cannot be normalized.
var ErrInvalidLimitation = errors.New("invalid limitation")

// Limitations maps a day of month to the shifts an engineer cannot work that day.
type Limitations map[int][]Shift

// Engineer is a member of the roster.
type Engineer struct {
	Name        string      `json:"name"`
	Workplaces  []string    `json:"workplaces"`
	Limitations Limitations `json:"limitations"`
}

// CanWork reports whether the engineer is eligible for the workplace.
func (e Engineer) CanWork(workplace string) bool {
	for _, wp := range e.Workplaces {
		if wp == workplace {
			return true
		}
	}
	return false
}

// Blocked reports whether the engineer is unavailable for shift on day.
func (e Engineer) Blocked(day int, shift Shift) bool {
	return e.Limitations.Blocks(day, shift)
}

// Blocks reports whether shift is listed for day.
func (l Limitations) Blocks(day int, shift Shift) bool {
	for _, s := range l[day] {
		if s == shift {
			return true
		}
	}
	return false
}

// ParseLimitations normalizes limitations received with string day keys.
// Day keys must be integers in 1..31 and shifts must be known. Duplicate
// shifts collapse and empty days are dropped.
func ParseLimitations(raw map[string][]string) (Limitations, error) {
	out := make(Limitations, len(raw))
	for key, shifts := range raw {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("%w: day %q is not a number", ErrInvalidLimitation, key)
		}
		normalized, err := normalizeDay(day, shifts)
		if err != nil {
			return nil, err
		}
		if len(normalized) > 0 {
			out[day] = normalized
		}
	}
	return out, nil
}

func normalizeDay(day int, shifts []string) ([]Shift, error) {
	if day < 1 || day > MaxDay {
		return nil, fmt.Errorf("%w: day %d out of range", ErrInvalidLimitation, day)
	}
	seen := make(map[Shift]struct{}, len(shifts))
	for _, raw := range shifts {
		shift, ok := ParseShift(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown shift %q on day %d", ErrInvalidLimitation, raw, day)
		}
		seen[shift] = struct{}{}
	}
	out := make([]Shift, 0, len(seen))
	for _, shift := range Shifts {
		if _, ok := seen[shift]; ok {
			out = append(out, shift)
		}
	}
	return out, nil
}

// FindEngineer returns the engineer with the exact name.
func FindEngineer(roster []Engineer, name string) (Engineer, bool) {
	for _, e := range roster {
		if e.Name == name {
			return e, true
		}
	}
	return Engineer{}, false
}
