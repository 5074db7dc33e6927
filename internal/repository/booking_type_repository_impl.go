package repository

import (
	"errors"

	"coach-booking-service/internal/domain/entity"
	domainRepo "coach-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingTypeRepository struct{}

func NewBookingTypeRepository() domainRepo.BookingTypeRepository {
	return &bookingTypeRepository{}
}

func (r *bookingTypeRepository) Create(db *gorm.DB, bookingType *entity.BookingType) error {
	return db.Create(bookingType).Error
}

func (r *bookingTypeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.BookingType, error) {
	var bookingType entity.BookingType
	err := db.Where("id = ?", id).First(&bookingType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bookingType, nil
}

func (r *bookingTypeRepository) FindBySlug(db *gorm.DB, slug string) (*entity.BookingType, error) {
	var bookingType entity.BookingType
	err := db.Where("slug = ? AND is_active = ?", slug, true).First(&bookingType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bookingType, nil
}

func (r *bookingTypeRepository) FindAll(db *gorm.DB) ([]entity.BookingType, error) {
	var bookingTypes []entity.BookingType
	err := db.Order("created_at ASC").Find(&bookingTypes).Error
	if err != nil {
		return nil, err
	}
	return bookingTypes, nil
}

func (r *bookingTypeRepository) Update(db *gorm.DB, bookingType *entity.BookingType) error {
	return db.Save(bookingType).Error
}

// Deactivate soft-disables a booking type so its public page stops
// resolving. Returns affected rows: 0 means unknown or already inactive.
func (r *bookingTypeRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.BookingType{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
