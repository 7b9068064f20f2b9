// Package calendar answers the month and weekday questions the scheduler needs.
package calendar

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days of the month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weekday returns the weekday of the given date.
func Weekday(year, month, day int) time.Weekday {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(year, month, day int) bool {
	wd := Weekday(year, month, day)
	return wd == time.Saturday || wd == time.Sunday
}

// DayLabel renders the day column of an exported sheet, e.g. "3 - Wednesday".
func DayLabel(year, month, day int) string {
	return fmt.Sprintf("%d - %s", day, Weekday(year, month, day))
}

// MonthName returns the English month name.
func MonthName(month int) string {
	return time.Month(month).String()
}

// Current returns the year and month of now.
func Current(now time.Time) (int, int) {
	return now.Year(), int(now.Month())
}
