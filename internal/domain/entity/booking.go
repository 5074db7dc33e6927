package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// IsTerminal reports whether no further transitions are allowed out of s.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// Booking represents a client appointment created through the public flow.
// ManageToken is the opaque secret that grants the client limited
// view/cancel/reschedule rights without authentication.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingTypeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"booking_type_id"`
	ManageToken   string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	FirstName     string        `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string        `gorm:"type:varchar(100)" json:"last_name"`
	Email         string        `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone         string        `gorm:"type:varchar(50)" json:"phone"`
	Notes         string        `gorm:"type:text" json:"notes"`
	StartTime     time.Time     `gorm:"not null;index" json:"start_time"`
	EndTime       time.Time     `gorm:"not null" json:"end_time"`
	Status        BookingStatus `gorm:"type:booking_status;not null;default:'pending';index" json:"status"`
	MeetingLink   string        `gorm:"type:text" json:"meeting_link"`
	CancelReason  string        `gorm:"type:text" json:"cancel_reason"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	BookingType BookingType `gorm:"foreignKey:BookingTypeID" json:"booking_type,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// CanTransitionTo reports whether the status machine permits moving the
// booking to next. Terminal states accept no transition.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status.IsTerminal() {
		return false
	}
	switch next {
	case BookingStatusConfirmed:
		return b.Status == BookingStatusPending
	case BookingStatusCompleted:
		return b.Status == BookingStatusConfirmed
	case BookingStatusCancelled, BookingStatusNoShow:
		return true
	}
	return false
}

// CanCancel reports whether the client may still cancel: the booking is not
// terminal and its start time is more than window away from now.
func (b *Booking) CanCancel(now time.Time, window time.Duration) bool {
	return !b.Status.IsTerminal() && now.Add(window).Before(b.StartTime)
}

// CanReschedule uses the same cutoff as cancellation.
func (b *Booking) CanReschedule(now time.Time, window time.Duration) bool {
	return b.CanCancel(now, window)
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsCancelled checks if booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}
