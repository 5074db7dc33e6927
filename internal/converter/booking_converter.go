package converter

import (
	"time"

	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
	"coach-booking-service/internal/scheduling"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:          booking.ID,
		FirstName:   booking.FirstName,
		LastName:    booking.LastName,
		Email:       booking.Email,
		Phone:       booking.Phone,
		Notes:       booking.Notes,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      string(booking.Status),
		MeetingLink: booking.MeetingLink,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}

	if booking.BookingType.ID != uuid.Nil {
		response.BookingType = BookingTypeToResponse(&booking.BookingType)
	}

	return response
}

// BookingToManageResponse builds the token-scoped view with the
// server-computed cancel/reschedule flags.
func BookingToManageResponse(booking *entity.Booking, now time.Time, cancelWindow time.Duration) *dto.ManageBookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.ManageBookingResponse{
		BookingResponse: *BookingToResponse(booking),
		CanCancel:       booking.CanCancel(now, cancelWindow),
		CanReschedule:   booking.CanReschedule(now, cancelWindow),
	}
}

// BookingsToResponses converts a slice of Booking entities to response DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SlotsToResponse converts generated time slots for one date
func SlotsToResponse(date string, slots []scheduling.TimeSlot) *dto.SlotListResponse {
	out := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = dto.TimeSlotResponse{
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}
	return &dto.SlotListResponse{
		Date:  date,
		Slots: out,
		Total: len(out),
	}
}
