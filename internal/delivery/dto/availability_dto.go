package dto

import "time"

// Request DTOs

type WeeklySlotRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateWeeklyAvailabilityRequest carries the FULL schedule across all
// seven days as one flat list. Saving replaces everything: a client that
// edited one day must resubmit the other days' intervals unchanged.
type UpdateWeeklyAvailabilityRequest struct {
	Slots []WeeklySlotRequest `json:"slots" validate:"dive"`
}

type CreateOverrideRequest struct {
	Date        string  `json:"date" validate:"required"` // YYYY-MM-DD
	IsAvailable *bool   `json:"is_available" validate:"required"`
	StartTime   *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime     *string `json:"end_time" validate:"omitempty,hhmm"`
	Reason      string  `json:"reason" validate:"omitempty,max=255"`
}

// Response DTOs

type WeeklySlotResponse struct {
	ID        int    `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

type DayScheduleResponse struct {
	DayOfWeek int                  `json:"day_of_week"`
	Slots     []WeeklySlotResponse `json:"slots"`
}

type WeeklyAvailabilityResponse struct {
	Days []DayScheduleResponse `json:"days"`
}

type OverrideResponse struct {
	ID          int       `json:"id"`
	Date        string    `json:"date"`
	IsAvailable bool      `json:"is_available"`
	StartTime   *string   `json:"start_time,omitempty"`
	EndTime     *string   `json:"end_time,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type OverrideListResponse struct {
	Overrides []OverrideResponse `json:"overrides"`
	Total     int                `json:"total"`
}
