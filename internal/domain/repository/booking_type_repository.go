package repository

import (
	"coach-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingTypeRepository interface {
	Create(db *gorm.DB, bookingType *entity.BookingType) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.BookingType, error)
	FindBySlug(db *gorm.DB, slug string) (*entity.BookingType, error)
	FindAll(db *gorm.DB) ([]entity.BookingType, error)
	Update(db *gorm.DB, bookingType *entity.BookingType) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
}
