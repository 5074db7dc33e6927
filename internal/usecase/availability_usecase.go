package usecase

import (
	"context"
	"errors"
	"time"

	"coach-booking-service/internal/converter"
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
	"coach-booking-service/internal/domain/repository"
	"coach-booking-service/internal/scheduling"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingTypeNotFound = errors.New("booking type not found")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidMonth        = errors.New("invalid month, use 1-12")
)

type AvailabilityUsecase interface {
	GetBookingType(ctx context.Context, slug string) (*dto.BookingTypeResponse, error)
	GetSlots(ctx context.Context, slug, date string) (*dto.SlotListResponse, error)
	GetCalendar(ctx context.Context, slug string, year, month int) (*dto.CalendarResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	location        *time.Location
	bookingTypeRepo repository.BookingTypeRepository
	weeklySlotRepo  repository.WeeklySlotRepository
	overrideRepo    repository.OverrideRepository
	bookingRepo     repository.BookingRepository
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	bookingTypeRepo repository.BookingTypeRepository,
	weeklySlotRepo repository.WeeklySlotRepository,
	overrideRepo repository.OverrideRepository,
	bookingRepo repository.BookingRepository,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		location:        location,
		bookingTypeRepo: bookingTypeRepo,
		weeklySlotRepo:  weeklySlotRepo,
		overrideRepo:    overrideRepo,
		bookingRepo:     bookingRepo,
	}
}

// GetBookingType resolves the public booking page configuration by slug.
func (u *availabilityUsecase) GetBookingType(ctx context.Context, slug string) (*dto.BookingTypeResponse, error) {
	bookingType, err := u.bookingTypeRepo.FindBySlug(u.db.WithContext(ctx), slug)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", slug, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	return converter.BookingTypeToResponse(bookingType), nil
}

// GetSlots returns the open slots for one date. Dates outside the
// eligibility window resolve to an empty list, not an error: the calendar
// stays usable and only the slot panel shows "no times available".
func (u *availabilityUsecase) GetSlots(ctx context.Context, slug, date string) (*dto.SlotListResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, u.location)
	if err != nil {
		return nil, ErrInvalidDate
	}

	bookingType, err := u.bookingTypeRepo.FindBySlug(u.db.WithContext(ctx), slug)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", slug, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	now := time.Now().In(u.location)
	if !scheduling.DateSelectable(bookingType, now, day) {
		return converter.SlotsToResponse(date, nil), nil
	}

	slots, err := u.slotsForDate(ctx, bookingType, day)
	if err != nil {
		return nil, err
	}

	return converter.SlotsToResponse(date, slots), nil
}

// GetCalendar builds the month grid for the public date picker: leading
// blanks plus one cell per day, each day flagged selectable or not. A
// blocked override makes its date unselectable even inside the window.
func (u *availabilityUsecase) GetCalendar(ctx context.Context, slug string, year, month int) (*dto.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	bookingType, err := u.bookingTypeRepo.FindBySlug(u.db.WithContext(ctx), slug)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", slug, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, u.location)
	monthEnd := monthStart.AddDate(0, 1, -1)

	overrides, err := u.overrideRepo.FindBetween(u.db.WithContext(ctx), monthStart, monthEnd)
	if err != nil {
		u.log.Warnf("Failed to list overrides for %d-%02d: %+v", year, month, err)
		return nil, err
	}
	blocked := make(map[string]bool)
	for _, override := range overrides {
		if !override.IsAvailable {
			blocked[override.Date.Format("2006-01-02")] = true
		}
	}

	now := time.Now().In(u.location)
	cells := scheduling.MonthGrid(year, time.Month(month))

	response := &dto.CalendarResponse{
		Year:  year,
		Month: month,
		Cells: make([]dto.CalendarCellResponse, len(cells)),
	}
	for i, cell := range cells {
		if cell.Day == 0 {
			response.Cells[i] = dto.CalendarCellResponse{}
			continue
		}
		day := time.Date(year, time.Month(month), cell.Day, 0, 0, 0, 0, u.location)
		date := day.Format("2006-01-02")
		response.Cells[i] = dto.CalendarCellResponse{
			Day:        cell.Day,
			Date:       date,
			Selectable: scheduling.DateSelectable(bookingType, now, day) && !blocked[date],
		}
	}

	return response, nil
}

// slotsForDate loads the weekly schedule, the date's override and the
// existing bookings, then delegates to the pure slot generator.
func (u *availabilityUsecase) slotsForDate(ctx context.Context, bookingType *entity.BookingType, day time.Time) ([]scheduling.TimeSlot, error) {
	db := u.db.WithContext(ctx)

	weekly, err := u.weeklySlotRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load weekly schedule: %+v", err)
		return nil, err
	}

	override, err := u.overrideRepo.FindByDate(db, day)
	if err != nil {
		u.log.Warnf("Failed to load override for %s: %+v", day.Format("2006-01-02"), err)
		return nil, err
	}

	dayStart := scheduling.Midnight(day)
	existing, err := u.bookingRepo.FindActiveBetween(db, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		u.log.Warnf("Failed to load bookings for %s: %+v", day.Format("2006-01-02"), err)
		return nil, err
	}

	return scheduling.DaySlots(bookingType, weekly, override, existing, day, u.location), nil
}
