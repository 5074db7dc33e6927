package repository

import (
	"errors"
	"time"

	"coach-booking-service/internal/domain/entity"
	domainRepo "coach-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("BookingType").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByManageToken(db *gorm.DB, token string) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("BookingType").Where("manage_token = ?", token).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("BookingType").Order("start_time DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindActiveBetween returns non-cancelled bookings starting inside [from, to).
// Used by the availability calculator to knock taken slots out of a day.
func (r *bookingRepository) FindActiveBetween(db *gorm.DB, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("start_time >= ? AND start_time < ? AND status != ?", from, to, entity.BookingStatusCancelled).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlapping returns non-cancelled bookings whose interval intersects
// [start, end). excludeID skips the booking being rescheduled; pass
// uuid.Nil for creation.
func (r *bookingRepository) FindOverlapping(db *gorm.DB, start, end time.Time, excludeID uuid.UUID) ([]entity.Booking, error) {
	query := db.Where("start_time < ? AND end_time > ? AND status != ?", end, start, entity.BookingStatusCancelled)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var bookings []entity.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus atomically moves a booking from one status to another.
// Returns affected rows: 0 means the booking was not in the expected
// status anymore (lost race), which callers treat as a rejected transition.
func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// CancelWithReason cancels a booking unless it already reached a terminal
// state. Returns affected rows: 1 = success, 0 = already terminal.
func (r *bookingRepository) CancelWithReason(db *gorm.DB, id uuid.UUID, reason string) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status NOT IN ?", id, []entity.BookingStatus{
			entity.BookingStatusCompleted,
			entity.BookingStatusCancelled,
			entity.BookingStatusNoShow,
		}).
		Updates(map[string]interface{}{
			"status":        entity.BookingStatusCancelled,
			"cancel_reason": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) UpdateTimes(db *gorm.DB, id uuid.UUID, start, end time.Time) error {
	return db.Model(&entity.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_time": start,
			"end_time":   end,
		}).Error
}
