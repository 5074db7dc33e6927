package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coach-booking-service/internal/domain/entity"
)

func TestWeeklySlotsToResponseGroupsPerDay(t *testing.T) {
	slots := []entity.WeeklySlot{
		{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{ID: 2, DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
		{ID: 3, DayOfWeek: 5, StartTime: "10:00", EndTime: "14:00"},
	}

	resp := WeeklySlotsToResponse(slots)

	// All seven days present, even the empty ones.
	require.Len(t, resp.Days, 7)
	for day := 0; day < 7; day++ {
		assert.Equal(t, day, resp.Days[day].DayOfWeek)
		assert.NotNil(t, resp.Days[day].Slots)
	}

	assert.Len(t, resp.Days[1].Slots, 2)
	assert.Len(t, resp.Days[5].Slots, 1)
	assert.Empty(t, resp.Days[0].Slots)
	assert.Equal(t, "09:00", resp.Days[1].Slots[0].StartTime)
}

func TestWeeklySlotsToResponseEmptySchedule(t *testing.T) {
	resp := WeeklySlotsToResponse(nil)

	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		assert.Empty(t, day.Slots)
	}
}
