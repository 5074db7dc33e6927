package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	StartTime string `json:"start_time" validate:"required"` // RFC 3339
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type RescheduleBookingRequest struct {
	NewStartTime string `json:"new_start_time" validate:"required"` // RFC 3339
}

// Response DTOs

type BookingResponse struct {
	ID          uuid.UUID            `json:"id"`
	BookingType *BookingTypeResponse `json:"booking_type,omitempty"`
	FirstName   string               `json:"first_name"`
	LastName    string               `json:"last_name,omitempty"`
	Email       string               `json:"email"`
	Phone       string               `json:"phone,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Status      string               `json:"status"`
	MeetingLink string               `json:"meeting_link,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ManageBookingResponse is the token-scoped view. CanCancel and
// CanReschedule are computed server-side; clients must treat them as
// authoritative and only use them to show or hide the actions.
type ManageBookingResponse struct {
	BookingResponse
	CanCancel     bool `json:"can_cancel"`
	CanReschedule bool `json:"can_reschedule"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type TimeSlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type SlotListResponse struct {
	Date  string             `json:"date"`
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}

type CalendarCellResponse struct {
	// Day is 0 for the leading blanks that pad the first week.
	Day        int    `json:"day"`
	Date       string `json:"date,omitempty"`
	Selectable bool   `json:"selectable"`
}

type CalendarResponse struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"`
	Cells []CalendarCellResponse `json:"cells"`
}
