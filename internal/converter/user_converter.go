package converter

import (
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
)

// UserToResponse converts a User entity to its response DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
