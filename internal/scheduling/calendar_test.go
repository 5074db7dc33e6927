package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coach-booking-service/internal/domain/entity"
)

func bookingType(minNoticeHours, maxAdvanceDays int) *entity.BookingType {
	return &entity.BookingType{
		DurationMinutes: 30,
		MinNoticeHours:  minNoticeHours,
		MaxAdvanceDays:  maxAdvanceDays,
	}
}

func TestEligibilityWindow(t *testing.T) {
	bt := bookingType(24, 30)
	// Mid-afternoon; the notice bound is anchored to midnight, not to now.
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	w := EligibilityWindow(bt, now)

	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), w.Earliest)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), w.Latest)
}

func TestEligibilityWindowZeroNotice(t *testing.T) {
	bt := bookingType(0, 7)
	now := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)

	w := EligibilityWindow(bt, now)

	// Zero notice keeps today itself selectable even late in the day.
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), w.Earliest)
	assert.Equal(t, time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC), w.Latest)
}

func TestEligibilityWindowSubDayNoticeRoundsWithinToday(t *testing.T) {
	// 12h notice at 01:00 lands mid-today: today is excluded because the
	// date comparison in DateSelectable works at midnight granularity.
	bt := bookingType(12, 30)
	now := time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)

	assert.False(t, DateSelectable(bt, now, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, DateSelectable(bt, now, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDateSelectable(t *testing.T) {
	bt := bookingType(24, 30)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"today excluded by notice", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"first eligible day", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"middle of window", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"last eligible day", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"past the horizon", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), false},
		{"in the past", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateSelectable(bt, now, tt.date))
		})
	}
}

func TestDateSelectableIgnoresTimeOfDay(t *testing.T) {
	bt := bookingType(24, 30)
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// 2024-06-02 at 00:30 is before midnight+24h as an instant, but the
	// date itself is eligible.
	assert.True(t, DateSelectable(bt, now, time.Date(2024, 6, 2, 0, 30, 0, 0, time.UTC)))
}

func TestMonthGrid(t *testing.T) {
	// March 2024 starts on a Friday: 5 leading blanks + 31 days.
	cells := MonthGrid(2024, time.March)

	assert.Len(t, cells, 36)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0, cells[i].Day)
	}
	assert.Equal(t, 1, cells[5].Day)
	assert.Equal(t, 31, cells[35].Day)
}

func TestMonthGridLeapFebruary(t *testing.T) {
	// February 2024 starts on a Thursday and has 29 days.
	cells := MonthGrid(2024, time.February)

	assert.Len(t, cells, 33)
	assert.Equal(t, 0, cells[3].Day)
	assert.Equal(t, 1, cells[4].Day)
	assert.Equal(t, 29, cells[32].Day)
}

func TestMonthGridLengthInvariant(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
			offset := int(first.Weekday())
			daysInMonth := first.AddDate(0, 1, -1).Day()

			cells := MonthGrid(year, month)
			assert.Len(t, cells, offset+daysInMonth, "%d-%s", year, month)

			// Day numbers must be contiguous after the blanks.
			for i, c := range cells {
				if i < offset {
					assert.Zero(t, c.Day)
				} else {
					assert.Equal(t, i-offset+1, c.Day)
				}
			}
		}
	}
}

func TestNextPrevMonth(t *testing.T) {
	y, m := NextMonth(2024, time.December)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.January, m)

	y, m = NextMonth(2024, time.June)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.July, m)

	y, m = PrevMonth(2025, time.January)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = PrevMonth(2024, time.June)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.May, m)
}
