package bookingclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestGetBookingType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/booking-types/discovery-call", r.URL.Path)
		respond(w, http.StatusOK, `{
			"success": true,
			"data": {
				"slug": "discovery-call",
				"name": "Discovery Call",
				"duration_minutes": 30,
				"min_notice_hours": 24,
				"max_advance_days": 30
			}
		}`)
	}))
	defer srv.Close()

	bt, err := New(srv.URL).GetBookingType(context.Background(), "discovery-call")
	require.NoError(t, err)
	assert.Equal(t, "Discovery Call", bt.Name)
	assert.Equal(t, 30, bt.DurationMinutes)
	assert.Equal(t, 24, bt.MinNoticeHours)
}

func TestGetBookingTypeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusNotFound, `{"success": false, "message": "Booking type not found"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetBookingType(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSlots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/booking-types/discovery-call/slots", r.URL.Path)
		assert.Equal(t, "2024-06-03", r.URL.Query().Get("date"))
		respond(w, http.StatusOK, `{
			"success": true,
			"data": {"slots": [
				{"start_time": "2024-06-03T09:00:00Z", "end_time": "2024-06-03T09:30:00Z"},
				{"start_time": "2024-06-03T09:30:00Z", "end_time": "2024-06-03T10:00:00Z"}
			]}
		}`)
	}))
	defer srv.Close()

	slots, err := New(srv.URL).GetSlots(context.Background(), "discovery-call", "2024-06-03")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
}

func TestGetSlotsServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusInternalServerError, `{"success": false, "message": "Failed to get slots"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetSlots(context.Background(), "discovery-call", "2024-06-03")

	var transient *TransientError
	assert.ErrorAs(t, err, &transient)
}

func TestGetSlotsConnectionRefusedIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the dial fails

	_, err := New(srv.URL).GetSlots(context.Background(), "discovery-call", "2024-06-03")

	var transient *TransientError
	assert.ErrorAs(t, err, &transient)
}

func TestCreateBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/booking-types/discovery-call/bookings", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2024-06-03T09:00:00Z", body["start_time"])
		assert.Equal(t, "Jamie", body["first_name"])
		assert.Equal(t, "jamie@example.com", body["email"])

		respond(w, http.StatusCreated, `{
			"success": true,
			"data": {
				"id": "5e0e6c90-7f2a-4a0e-9b1f-000000000001",
				"first_name": "Jamie",
				"email": "jamie@example.com",
				"start_time": "2024-06-03T09:00:00Z",
				"end_time": "2024-06-03T09:30:00Z",
				"status": "pending"
			}
		}`)
	}))
	defer srv.Close()

	booking, err := New(srv.URL).CreateBooking(
		context.Background(),
		"discovery-call",
		time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		ContactDetails{FirstName: "Jamie", Email: "jamie@example.com"},
	)
	require.NoError(t, err)
	assert.Equal(t, "pending", booking.Status)
}

func TestCreateBookingConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusConflict, `{"success": false, "message": "This time is no longer available, please pick another time"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateBooking(
		context.Background(),
		"discovery-call",
		time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		ContactDetails{FirstName: "Jamie", Email: "jamie@example.com"},
	)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreateBookingValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusBadRequest, `{
			"success": false,
			"message": "Validation failed",
			"error": {"email": "email must be a valid email address"}
		}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateBooking(
		context.Background(),
		"discovery-call",
		time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		ContactDetails{FirstName: "Jamie", Email: "not-an-email"},
	)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email must be a valid email address", vErr.Fields["email"])
}

func TestGetBookingByToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings/manage/tok123", r.URL.Path)
		respond(w, http.StatusOK, `{
			"success": true,
			"data": {
				"id": "5e0e6c90-7f2a-4a0e-9b1f-000000000001",
				"status": "confirmed",
				"start_time": "2024-06-03T09:00:00Z",
				"end_time": "2024-06-03T09:30:00Z",
				"can_cancel": true,
				"can_reschedule": false
			}
		}`)
	}))
	defer srv.Close()

	booking, err := New(srv.URL).GetBookingByToken(context.Background(), "tok123")
	require.NoError(t, err)
	assert.True(t, booking.CanCancel)
	assert.False(t, booking.CanReschedule)
}

func TestCancelBooking(t *testing.T) {
	var gotReason string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings/manage/tok123/cancel", r.URL.Path)
		var body struct {
			Reason string `json:"reason"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotReason = body.Reason
		respond(w, http.StatusOK, `{"success": true, "message": "Booking cancelled successfully"}`)
	}))
	defer srv.Close()

	err := New(srv.URL).CancelBooking(context.Background(), "tok123", "schedule conflict")
	require.NoError(t, err)
	assert.Equal(t, "schedule conflict", gotReason)
}

func TestRescheduleBookingConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bookings/manage/tok123/reschedule", r.URL.Path)
		respond(w, http.StatusConflict, `{"success": false, "message": "This time is no longer available, please pick another time"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).RescheduleBooking(context.Background(), "tok123", time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrSlotConflict)
}
