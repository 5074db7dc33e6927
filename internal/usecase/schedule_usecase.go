package usecase

import (
	"context"
	"errors"
	"time"

	"coach-booking-service/internal/converter"
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
	"coach-booking-service/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidInterval         = errors.New("interval start must be before end")
	ErrOverrideNotFound        = errors.New("override not found")
	ErrOverrideExists          = errors.New("an override already exists for this date")
	ErrOverrideIntervalMissing = errors.New("an available override requires start and end times")
)

type ScheduleUsecase interface {
	GetWeeklyAvailability(ctx context.Context) (*dto.WeeklyAvailabilityResponse, error)
	UpdateWeeklyAvailability(ctx context.Context, req *dto.UpdateWeeklyAvailabilityRequest) (*dto.WeeklyAvailabilityResponse, error)
	ListOverrides(ctx context.Context) (*dto.OverrideListResponse, error)
	CreateOverride(ctx context.Context, req *dto.CreateOverrideRequest) (*dto.OverrideResponse, error)
	DeleteOverride(ctx context.Context, id int) error
}

type scheduleUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	weeklySlotRepo repository.WeeklySlotRepository
	overrideRepo   repository.OverrideRepository
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	weeklySlotRepo repository.WeeklySlotRepository,
	overrideRepo repository.OverrideRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:             db,
		log:            log,
		weeklySlotRepo: weeklySlotRepo,
		overrideRepo:   overrideRepo,
	}
}

func (u *scheduleUsecase) GetWeeklyAvailability(ctx context.Context) (*dto.WeeklyAvailabilityResponse, error) {
	slots, err := u.weeklySlotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load weekly schedule: %+v", err)
		return nil, err
	}

	return converter.WeeklySlotsToResponse(slots), nil
}

// UpdateWeeklyAvailability replaces the whole weekly schedule with the
// submitted flat list. Intervals the client leaves out are gone after the
// save; that is the contract, not an accident.
func (u *scheduleUsecase) UpdateWeeklyAvailability(ctx context.Context, req *dto.UpdateWeeklyAvailabilityRequest) (*dto.WeeklyAvailabilityResponse, error) {
	slots := make([]entity.WeeklySlot, 0, len(req.Slots))
	for _, slot := range req.Slots {
		if slot.StartTime >= slot.EndTime {
			return nil, ErrInvalidInterval
		}
		slots = append(slots, entity.WeeklySlot{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			IsActive:  slot.IsActive,
		})
	}

	if err := u.weeklySlotRepo.ReplaceAll(u.db.WithContext(ctx), slots); err != nil {
		u.log.Warnf("Failed to replace weekly schedule: %+v", err)
		return nil, err
	}

	saved, err := u.weeklySlotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to reload weekly schedule: %+v", err)
		return nil, err
	}

	u.log.Infof("Weekly schedule replaced: %d intervals", len(saved))
	return converter.WeeklySlotsToResponse(saved), nil
}

func (u *scheduleUsecase) ListOverrides(ctx context.Context) (*dto.OverrideListResponse, error) {
	overrides, err := u.overrideRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list overrides: %+v", err)
		return nil, err
	}

	return &dto.OverrideListResponse{
		Overrides: converter.OverridesToResponses(overrides),
		Total:     len(overrides),
	}, nil
}

func (u *scheduleUsecase) CreateOverride(ctx context.Context, req *dto.CreateOverrideRequest) (*dto.OverrideResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	isAvailable := req.IsAvailable != nil && *req.IsAvailable
	if isAvailable {
		if req.StartTime == nil || req.EndTime == nil {
			return nil, ErrOverrideIntervalMissing
		}
		if *req.StartTime >= *req.EndTime {
			return nil, ErrInvalidInterval
		}
	}

	override := &entity.AvailabilityOverride{
		Date:        date,
		IsAvailable: isAvailable,
		Reason:      req.Reason,
	}
	// A blocked date carries no interval regardless of what was submitted.
	if isAvailable {
		override.StartTime = req.StartTime
		override.EndTime = req.EndTime
	}

	if err := u.overrideRepo.Create(u.db.WithContext(ctx), override); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrOverrideExists
		}
		u.log.Warnf("Failed to create override: %+v", err)
		return nil, err
	}

	u.log.Infof("Override created: date=%s, available=%t", req.Date, isAvailable)
	return converter.OverrideToResponse(override), nil
}

// DeleteOverride reverts the date to pure weekly-schedule behavior.
func (u *scheduleUsecase) DeleteOverride(ctx context.Context, id int) error {
	rows, err := u.overrideRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete override %d: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrOverrideNotFound
	}

	u.log.Infof("Override deleted: id=%d", id)
	return nil
}

// isUniqueViolation checks for Postgres error 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
