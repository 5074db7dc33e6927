package scheduling

import (
	"time"

	"coach-booking-service/internal/domain/entity"
)

// TimeSlot is an ephemeral bookable interval produced for one date. It is
// never persisted; the bookings table is the source of truth for conflicts.
type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type interval struct {
	start string
	end   string
}

// DaySlots generates the open slots for one date.
//
// Resolution order:
//  1. An override for the date wins outright: blocked date -> no slots,
//     available override -> its interval replaces the weekly schedule.
//  2. Otherwise the active weekly intervals for the date's weekday apply.
//
// Each interval is cut into consecutive duration-sized slots, and slots
// overlapping any booking in existing (callers pass non-cancelled ones)
// are dropped. Date/time strings are interpreted in loc.
func DaySlots(
	bt *entity.BookingType,
	weekly []entity.WeeklySlot,
	override *entity.AvailabilityOverride,
	existing []entity.Booking,
	date time.Time,
	loc *time.Location,
) []TimeSlot {
	intervals := resolveIntervals(weekly, override, date)

	duration := bt.Duration()
	slots := []TimeSlot{}
	for _, iv := range intervals {
		start, ok := timeOnDate(date, iv.start, loc)
		if !ok {
			continue
		}
		end, ok := timeOnDate(date, iv.end, loc)
		if !ok || !start.Before(end) {
			continue
		}

		for cursor := start; !cursor.Add(duration).After(end); cursor = cursor.Add(duration) {
			slot := TimeSlot{StartTime: cursor, EndTime: cursor.Add(duration)}
			if !overlapsAny(slot, existing) {
				slots = append(slots, slot)
			}
		}
	}
	return slots
}

func resolveIntervals(weekly []entity.WeeklySlot, override *entity.AvailabilityOverride, date time.Time) []interval {
	if override != nil {
		if !override.IsAvailable || override.StartTime == nil || override.EndTime == nil {
			return nil
		}
		return []interval{{start: *override.StartTime, end: *override.EndTime}}
	}

	weekday := int(date.Weekday())
	var intervals []interval
	for _, ws := range weekly {
		if ws.DayOfWeek != weekday || !ws.Active() {
			continue
		}
		intervals = append(intervals, interval{start: ws.StartTime, end: ws.EndTime})
	}
	return intervals
}

func timeOnDate(date time.Time, hhmm string, loc *time.Location) (time.Time, bool) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		// Postgres time columns read back as HH:MM:SS.
		parsed, err = time.Parse("15:04:05", hhmm)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), true
}

func overlapsAny(slot TimeSlot, bookings []entity.Booking) bool {
	for _, b := range bookings {
		if b.Status == entity.BookingStatusCancelled {
			continue
		}
		if slot.StartTime.Before(b.EndTime) && b.StartTime.Before(slot.EndTime) {
			return true
		}
	}
	return false
}
