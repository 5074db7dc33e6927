package converter

import (
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
)

// WeeklySlotsToResponse groups the flat interval list per day-of-week
// (0=Sunday..6=Saturday). Every day appears, even when empty, so the
// settings view can render all seven rows without special-casing.
func WeeklySlotsToResponse(slots []entity.WeeklySlot) *dto.WeeklyAvailabilityResponse {
	days := make([]dto.DayScheduleResponse, 7)
	for day := 0; day < 7; day++ {
		days[day] = dto.DayScheduleResponse{
			DayOfWeek: day,
			Slots:     []dto.WeeklySlotResponse{},
		}
	}

	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			continue
		}
		days[slot.DayOfWeek].Slots = append(days[slot.DayOfWeek].Slots, dto.WeeklySlotResponse{
			ID:        slot.ID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			IsActive:  slot.Active(),
		})
	}

	return &dto.WeeklyAvailabilityResponse{Days: days}
}

// OverrideToResponse converts an AvailabilityOverride entity
func OverrideToResponse(override *entity.AvailabilityOverride) *dto.OverrideResponse {
	if override == nil {
		return nil
	}

	return &dto.OverrideResponse{
		ID:          override.ID,
		Date:        override.Date.Format("2006-01-02"),
		IsAvailable: override.IsAvailable,
		StartTime:   override.StartTime,
		EndTime:     override.EndTime,
		Reason:      override.Reason,
		CreatedAt:   override.CreatedAt,
	}
}

// OverridesToResponses converts a slice of overrides
func OverridesToResponses(overrides []entity.AvailabilityOverride) []dto.OverrideResponse {
	responses := make([]dto.OverrideResponse, len(overrides))
	for i, override := range overrides {
		resp := OverrideToResponse(&override)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
