package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coach-booking-service/internal/domain/entity"
)

func weeklySlot(day int, start, end string) entity.WeeklySlot {
	return entity.WeeklySlot{DayOfWeek: day, StartTime: start, EndTime: end}
}

func strPtr(s string) *string { return &s }

// 2024-06-03 is a Monday.
var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func TestDaySlotsFromWeeklySchedule(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{
		weeklySlot(1, "09:00", "12:00"),
		weeklySlot(1, "13:00", "15:00"),
		weeklySlot(2, "09:00", "17:00"), // Tuesday, must not leak in
	}

	slots := DaySlots(bt, weekly, nil, nil, monday, time.UTC)

	require.Len(t, slots, 5)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), slots[0].EndTime)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), slots[2].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 13, 0, 0, 0, time.UTC), slots[3].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC), slots[4].StartTime)
}

func TestDaySlotsPartialSlotDropped(t *testing.T) {
	// 30-minute discovery calls in a 09:00-10:15 interval: the 10:00
	// slot would end past the interval and is dropped.
	bt := &entity.BookingType{DurationMinutes: 30}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "10:15")}

	slots := DaySlots(bt, weekly, nil, nil, monday, time.UTC)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC), slots[1].StartTime)
}

func TestDaySlotsBlockedOverride(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "17:00")}
	override := &entity.AvailabilityOverride{Date: monday, IsAvailable: false}

	slots := DaySlots(bt, weekly, override, nil, monday, time.UTC)

	assert.Empty(t, slots)
}

func TestDaySlotsAvailableOverrideReplacesWeekly(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "17:00")}
	override := &entity.AvailabilityOverride{
		Date:        monday,
		IsAvailable: true,
		StartTime:   strPtr("14:00"),
		EndTime:     strPtr("16:00"),
	}

	slots := DaySlots(bt, weekly, override, nil, monday, time.UTC)

	// Only the override's window, not the union with the weekly hours.
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC), slots[1].StartTime)
}

func TestDaySlotsAvailableOverrideWithoutIntervalYieldsNothing(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "17:00")}
	override := &entity.AvailabilityOverride{Date: monday, IsAvailable: true}

	slots := DaySlots(bt, weekly, override, nil, monday, time.UTC)

	assert.Empty(t, slots)
}

func TestDaySlotsExcludesBookedOverlaps(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "13:00")}
	existing := []entity.Booking{
		{
			StartTime: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC),
			Status:    entity.BookingStatusConfirmed,
		},
	}

	slots := DaySlots(bt, weekly, nil, existing, monday, time.UTC)

	require.Len(t, slots, 3)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), slots[1].StartTime)
	assert.Equal(t, time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC), slots[2].StartTime)
}

func TestDaySlotsPartialOverlapAlsoExcluded(t *testing.T) {
	// A booking straddling two slot boundaries removes both slots.
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "12:00")}
	existing := []entity.Booking{
		{
			StartTime: time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC),
			Status:    entity.BookingStatusPending,
		},
	}

	slots := DaySlots(bt, weekly, nil, existing, monday, time.UTC)

	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC), slots[0].StartTime)
}

func TestDaySlotsCancelledBookingFreesSlot(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "11:00")}
	existing := []entity.Booking{
		{
			StartTime: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
			Status:    entity.BookingStatusCancelled,
		},
	}

	slots := DaySlots(bt, weekly, nil, existing, monday, time.UTC)

	assert.Len(t, slots, 2)
}

func TestDaySlotsInactiveWeeklyIntervalSkipped(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	inactive := false
	weekly := []entity.WeeklySlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: &inactive},
	}

	slots := DaySlots(bt, weekly, nil, nil, monday, time.UTC)

	assert.Empty(t, slots)
}

func TestDaySlotsPostgresTimeFormat(t *testing.T) {
	// time columns come back as HH:MM:SS after a DB round trip.
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00:00", "11:00:00")}

	slots := DaySlots(bt, weekly, nil, nil, monday, time.UTC)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
}

func TestDaySlotsInvertedIntervalIgnored(t *testing.T) {
	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "15:00", "09:00")}

	slots := DaySlots(bt, weekly, nil, nil, monday, time.UTC)

	assert.Empty(t, slots)
}

func TestDaySlotsRespectsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	bt := &entity.BookingType{DurationMinutes: 60}
	weekly := []entity.WeeklySlot{weeklySlot(1, "09:00", "10:00")}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, loc)

	slots := DaySlots(bt, weekly, nil, nil, date, loc)

	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, loc), slots[0].StartTime)
	assert.Equal(t, loc, slots[0].StartTime.Location())
}
