package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusNoShow.IsTerminal())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusNoShow, true},
		{BookingStatusPending, BookingStatusCompleted, false},

		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusNoShow, true},
		{BookingStatusConfirmed, BookingStatusConfirmed, false},
		{BookingStatusConfirmed, BookingStatusPending, false},

		// Terminal states accept nothing, including re-entry.
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
		{BookingStatusNoShow, BookingStatusCompleted, false},
	}
	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.want, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCanCancel(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	t.Run("well before the cutoff", func(t *testing.T) {
		b := &Booking{Status: BookingStatusConfirmed, StartTime: now.Add(48 * time.Hour)}
		assert.True(t, b.CanCancel(now, window))
	})

	t.Run("inside the window", func(t *testing.T) {
		b := &Booking{Status: BookingStatusConfirmed, StartTime: now.Add(12 * time.Hour)}
		assert.False(t, b.CanCancel(now, window))
	})

	t.Run("exactly at the cutoff", func(t *testing.T) {
		b := &Booking{Status: BookingStatusPending, StartTime: now.Add(24 * time.Hour)}
		assert.False(t, b.CanCancel(now, window))
	})

	t.Run("terminal booking never cancellable", func(t *testing.T) {
		b := &Booking{Status: BookingStatusCancelled, StartTime: now.Add(48 * time.Hour)}
		assert.False(t, b.CanCancel(now, window))
	})

	t.Run("zero window allows up to start", func(t *testing.T) {
		b := &Booking{Status: BookingStatusPending, StartTime: now.Add(time.Minute)}
		assert.True(t, b.CanCancel(now, 0))
	})
}

func TestCanRescheduleMatchesCancelCutoff(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	near := &Booking{Status: BookingStatusConfirmed, StartTime: now.Add(time.Hour)}
	far := &Booking{Status: BookingStatusConfirmed, StartTime: now.Add(72 * time.Hour)}

	assert.False(t, near.CanReschedule(now, window))
	assert.True(t, far.CanReschedule(now, window))
}
