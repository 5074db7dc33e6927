package repository

import (
	"time"

	"coach-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByManageToken(db *gorm.DB, token string) (*entity.Booking, error)
	FindAll(db *gorm.DB) ([]entity.Booking, error)
	FindActiveBetween(db *gorm.DB, from, to time.Time) ([]entity.Booking, error)
	FindOverlapping(db *gorm.DB, start, end time.Time, excludeID uuid.UUID) ([]entity.Booking, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
	CancelWithReason(db *gorm.DB, id uuid.UUID, reason string) (int64, error)
	UpdateTimes(db *gorm.DB, id uuid.UUID, start, end time.Time) error
}
