// Package billing holds the billing-cycle arithmetic shared by the whole
// application: normalizing a price to its monthly equivalent and stepping a
// due date forward or backward by one cycle.
//
// The weekly-to-monthly factor is deliberately 4 (not 4.33). Displayed figures
// across the product are defined relative to that convention, so changing it
// here would change every aggregate the client shows.
package billing

import (
	"errors"
	"fmt"
	"time"
)

// Cycle is the recurrence cadence of a charge.
type Cycle string

const (
	CycleWeekly  Cycle = "Weekly"
	CycleMonthly Cycle = "Monthly"
	CycleYearly  Cycle = "Yearly"
)

// ErrInvalidCycle is returned whenever an unrecognized billing cycle reaches
// any of the calculations in this package. Unknown cycles are never passed
// through silently.
var ErrInvalidCycle = errors.New("invalid billing cycle")

// DateLayout is the calendar-date format used at the API and storage
// boundaries. Dates carry no time component.
const DateLayout = "2006-01-02"

// Valid reports whether c is one of the recognized cycles.
func (c Cycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleYearly:
		return true
	}
	return false
}

// MonthlyAmount converts a (price, cycle) pair into its monthly-equivalent
// figure: weekly prices are multiplied by 4, monthly prices pass through
// unchanged, and yearly prices are divided by 12.
func MonthlyAmount(price float64, cycle Cycle) (float64, error) {
	switch cycle {
	case CycleWeekly:
		return price * 4, nil
	case CycleMonthly:
		return price, nil
	case CycleYearly:
		return price / 12, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCycle, cycle)
	}
}

// ParseDate parses a YYYY-MM-DD calendar date into a UTC-midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time.Time as a YYYY-MM-DD calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NextDueDate computes the billing date one cycle after d.
//
// Month and year steps clamp the day to the last valid day of the target
// month: Jan 31 + 1 month is Feb 28 (or 29), and Feb 29 + 1 year is Feb 28.
// time.Time.AddDate is not used for those steps because it rolls overflow
// into the following month.
func NextDueDate(d time.Time, cycle Cycle) (time.Time, error) {
	switch cycle {
	case CycleWeekly:
		return d.AddDate(0, 0, 7), nil
	case CycleMonthly:
		return addMonthsClamped(d, 1), nil
	case CycleYearly:
		return addYearsClamped(d, 1), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCycle, cycle)
	}
}

// PreviousDueDate computes the billing date one cycle before d. It applies
// the exact mirror of NextDueDate's rules, so the round trip
// NextDueDate(PreviousDueDate(d, c), c) == d holds for every date that does
// not sit past the length of an adjacent month. Edge dates (the 29th-31st
// stepping into a shorter month) lose the original day to clamping; see the
// package tests for the documented cases.
func PreviousDueDate(d time.Time, cycle Cycle) (time.Time, error) {
	switch cycle {
	case CycleWeekly:
		return d.AddDate(0, 0, -7), nil
	case CycleMonthly:
		return addMonthsClamped(d, -1), nil
	case CycleYearly:
		return addYearsClamped(d, -1), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidCycle, cycle)
	}
}

func addMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	// Anchor at the first of the target month, then clamp the day.
	anchor := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	if last := daysInMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, d.Location())
}

func addYearsClamped(d time.Time, years int) time.Time {
	y, m, day := d.Date()
	if last := daysInMonth(y+years, m); day > last {
		day = last
	}
	return time.Date(y+years, m, day, 0, 0, 0, 0, d.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
