// Package scheduling holds the pure date/slot arithmetic behind the public
// booking flow. Everything here is deterministic: no clocks, no I/O, no
// mutation of shared state. Callers pass "now" explicitly.
package scheduling

import (
	"time"

	"coach-booking-service/internal/domain/entity"
)

// Window is the inclusive range of selectable dates for a booking type,
// both bounds normalized to midnight in the booking timezone.
type Window struct {
	Earliest time.Time
	Latest   time.Time
}

// Midnight truncates t to local midnight in t's location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EligibilityWindow computes the selectable date range for a booking type.
// The minimum-notice bound is added to midnight-today, not to the current
// instant, so notice is effectively measured in whole days even though it
// is configured in hours. This matches the product's observed behavior and
// must not be "fixed" to a precise lead-time check.
func EligibilityWindow(bt *entity.BookingType, now time.Time) Window {
	today := Midnight(now)
	return Window{
		Earliest: today.Add(time.Duration(bt.MinNoticeHours) * time.Hour),
		Latest:   today.AddDate(0, 0, bt.MaxAdvanceDays),
	}
}

// DateSelectable reports whether the calendar date of d falls inside the
// eligibility window. Only the date matters; time-of-day is discarded.
func DateSelectable(bt *entity.BookingType, now, d time.Time) bool {
	w := EligibilityWindow(bt, now)
	day := Midnight(d)
	return !day.Before(w.Earliest) && !day.After(w.Latest)
}

// GridCell is one cell of the month grid. Day is 0 for the leading blanks
// that pad the first week so day 1 lands in its weekday column.
type GridCell struct {
	Day int
}

// MonthGrid builds the flat cell sequence for a displayed month: one blank
// per leading weekday offset (Sunday=0 convention) followed by one cell per
// day of the month. Pure function of (year, month); total length is always
// leading offset + days in month.
func MonthGrid(year int, month time.Month) []GridCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]GridCell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, GridCell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, GridCell{Day: day})
	}
	return cells
}

// NextMonth returns the (year, month) pair following the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth returns the (year, month) pair preceding the given one.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
