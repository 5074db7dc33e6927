// Package bookingclient is a thin typed client for the public booking API,
// plus the slot-selection state machine the booking page drives. Response
// shapes are parsed into explicit structs at the boundary; nothing
// downstream touches raw JSON.
package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error taxonomy. Read failures that back a list degrade to empty results
// in the flow; mutating failures surface to the caller.
var (
	// ErrNotFound means the booking type or manage token does not resolve.
	ErrNotFound = errors.New("bookingclient: not found")
	// ErrSlotConflict means the slot was taken between retrieval and
	// submission; the user must pick another time.
	ErrSlotConflict = errors.New("bookingclient: slot conflict")
)

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bookingclient: validation failed (%d fields)", len(e.Fields))
}

// TransientError wraps network or server failures on read endpoints.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "bookingclient: transient failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// BookingType mirrors the public booking page configuration.
type BookingType struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price,omitempty"`
	MinNoticeHours  int    `json:"min_notice_hours"`
	MaxAdvanceDays  int    `json:"max_advance_days"`
}

type TimeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type Booking struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	MeetingLink string    `json:"meeting_link,omitempty"`
}

// ManagedBooking is the token-scoped view. CanCancel and CanReschedule are
// server-computed; the client only uses them to decide whether to render
// the actions, never to re-derive the cutoff locally.
type ManagedBooking struct {
	Booking
	CanCancel     bool `json:"can_cancel"`
	CanReschedule bool `json:"can_reschedule"`
}

// ContactDetails are the fields submitted with a booking.
type ContactDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// envelope matches the API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (c *Client) GetBookingType(ctx context.Context, slug string) (*BookingType, error) {
	var out BookingType
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/booking-types/%s", slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSlots(ctx context.Context, slug, date string) ([]TimeSlot, error) {
	var out struct {
		Slots []TimeSlot `json:"slots"`
	}
	path := fmt.Sprintf("/api/v1/booking-types/%s/slots?date=%s", slug, date)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

func (c *Client) CreateBooking(ctx context.Context, slug string, start time.Time, contact ContactDetails) (*Booking, error) {
	body := struct {
		StartTime string `json:"start_time"`
		ContactDetails
	}{
		StartTime:      start.Format(time.RFC3339),
		ContactDetails: contact,
	}

	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/booking-types/%s/bookings", slug), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBookingByToken(ctx context.Context, token string) (*ManagedBooking, error) {
	var out ManagedBooking
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/bookings/manage/%s", token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelBooking(ctx context.Context, token, reason string) error {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/manage/%s/cancel", token), body, nil)
}

func (c *Client) RescheduleBooking(ctx context.Context, token string, newStart time.Time) (*Booking, error) {
	body := struct {
		NewStartTime string `json:"new_start_time"`
	}{NewStartTime: newStart.Format(time.RFC3339)}

	var out Booking
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/v1/bookings/manage/%s/reschedule", token), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransientError{Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &TransientError{Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || env.Data == nil {
			return nil
		}
		return json.Unmarshal(env.Data, out)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrSlotConflict
	case resp.StatusCode == http.StatusBadRequest:
		fields := map[string]string{}
		if env.Error != nil {
			// Best effort; a non-map error payload still yields a
			// ValidationError with the message only.
			json.Unmarshal(env.Error, &fields)
		}
		if env.Message != "" && len(fields) == 0 {
			fields["_"] = env.Message
		}
		return &ValidationError{Fields: fields}
	default:
		return &TransientError{Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, env.Message)}
	}
}
