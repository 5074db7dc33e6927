package repository

import (
	"time"

	"coach-booking-service/internal/domain/entity"

	"gorm.io/gorm"
)

type WeeklySlotRepository interface {
	FindAll(db *gorm.DB) ([]entity.WeeklySlot, error)
	ReplaceAll(db *gorm.DB, slots []entity.WeeklySlot) error
}

type OverrideRepository interface {
	Create(db *gorm.DB, override *entity.AvailabilityOverride) error
	FindAll(db *gorm.DB) ([]entity.AvailabilityOverride, error)
	FindByDate(db *gorm.DB, date time.Time) (*entity.AvailabilityOverride, error)
	FindBetween(db *gorm.DB, from, to time.Time) ([]entity.AvailabilityOverride, error)
	Delete(db *gorm.DB, id int) (int64, error)
}
