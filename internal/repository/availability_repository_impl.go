package repository

import (
	"errors"
	"time"

	"coach-booking-service/internal/domain/entity"
	domainRepo "coach-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type weeklySlotRepository struct{}

func NewWeeklySlotRepository() domainRepo.WeeklySlotRepository {
	return &weeklySlotRepository{}
}

func (r *weeklySlotRepository) FindAll(db *gorm.DB) ([]entity.WeeklySlot, error) {
	var slots []entity.WeeklySlot
	err := db.Order("day_of_week ASC, start_time ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ReplaceAll swaps the entire weekly schedule for the given flat list.
// Save semantics are replace-not-merge: intervals missing from slots are
// dropped. Runs in a transaction so a failed save never leaves the
// schedule half-replaced.
func (r *weeklySlotRepository) ReplaceAll(db *gorm.DB, slots []entity.WeeklySlot) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entity.WeeklySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

type overrideRepository struct{}

func NewOverrideRepository() domainRepo.OverrideRepository {
	return &overrideRepository{}
}

func (r *overrideRepository) Create(db *gorm.DB, override *entity.AvailabilityOverride) error {
	return db.Create(override).Error
}

func (r *overrideRepository) FindAll(db *gorm.DB) ([]entity.AvailabilityOverride, error) {
	var overrides []entity.AvailabilityOverride
	err := db.Order("date ASC").Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *overrideRepository) FindByDate(db *gorm.DB, date time.Time) (*entity.AvailabilityOverride, error) {
	var override entity.AvailabilityOverride
	err := db.Where("date = ?", date.Format("2006-01-02")).First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

func (r *overrideRepository) FindBetween(db *gorm.DB, from, to time.Time) ([]entity.AvailabilityOverride, error) {
	var overrides []entity.AvailabilityOverride
	err := db.Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *overrideRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Delete(&entity.AvailabilityOverride{}, id)
	return result.RowsAffected, result.Error
}
