package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBookingTypeRequest struct {
	Slug            string           `json:"slug" validate:"required,max=100"`
	Name            string           `json:"name" validate:"required,max=255"`
	Description     string           `json:"description" validate:"omitempty"`
	DurationMinutes int              `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
	MinNoticeHours  int              `json:"min_notice_hours" validate:"gte=0"`
	MaxAdvanceDays  int              `json:"max_advance_days" validate:"required,min=1,max=365"`
}

type UpdateBookingTypeRequest struct {
	Name            string           `json:"name" validate:"omitempty,max=255"`
	Description     *string          `json:"description" validate:"omitempty"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Price           *decimal.Decimal `json:"price" validate:"omitempty"`
	MinNoticeHours  *int             `json:"min_notice_hours" validate:"omitempty,gte=0"`
	MaxAdvanceDays  *int             `json:"max_advance_days" validate:"omitempty,min=1,max=365"`
}

// Response DTOs

type BookingTypeResponse struct {
	ID              uuid.UUID        `json:"id"`
	Slug            string           `json:"slug"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	MinNoticeHours  int              `json:"min_notice_hours"`
	MaxAdvanceDays  int              `json:"max_advance_days"`
	IsActive        *bool            `json:"is_active,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type BookingTypeListResponse struct {
	BookingTypes []BookingTypeResponse `json:"booking_types"`
	Total        int                   `json:"total"`
}
