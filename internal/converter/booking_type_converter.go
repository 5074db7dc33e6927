package converter

import (
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
)

// BookingTypeToResponse converts a BookingType entity to its response DTO
func BookingTypeToResponse(bookingType *entity.BookingType) *dto.BookingTypeResponse {
	if bookingType == nil {
		return nil
	}

	return &dto.BookingTypeResponse{
		ID:              bookingType.ID,
		Slug:            bookingType.Slug,
		Name:            bookingType.Name,
		Description:     bookingType.Description,
		DurationMinutes: bookingType.DurationMinutes,
		Price:           bookingType.Price,
		MinNoticeHours:  bookingType.MinNoticeHours,
		MaxAdvanceDays:  bookingType.MaxAdvanceDays,
		IsActive:        bookingType.IsActive,
		CreatedAt:       bookingType.CreatedAt,
		UpdatedAt:       bookingType.UpdatedAt,
	}
}

// BookingTypesToResponses converts a slice of BookingType entities
func BookingTypesToResponses(bookingTypes []entity.BookingType) []dto.BookingTypeResponse {
	responses := make([]dto.BookingTypeResponse, len(bookingTypes))
	for i, bookingType := range bookingTypes {
		resp := BookingTypeToResponse(&bookingType)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
