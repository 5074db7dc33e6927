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
	"coach-booking-service/internal/service"
	"coach-booking-service/pkg/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrInvalidStartTime       = errors.New("invalid start time, use RFC 3339")
	ErrSlotUnavailable        = errors.New("start time is not an open slot")
	ErrSlotTaken              = errors.New("slot was taken, please pick another time")
	ErrBookingFinal           = errors.New("booking already reached a final state")
	ErrCancelWindowClosed     = errors.New("booking can no longer be cancelled")
	ErrRescheduleWindowClosed = errors.New("booking can no longer be rescheduled")
	ErrInvalidTransition      = errors.New("invalid booking status transition")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetByManageToken(ctx context.Context, manageToken string) (*dto.ManageBookingResponse, error)
	CancelByToken(ctx context.Context, manageToken string, req *dto.CancelBookingRequest) error
	RescheduleByToken(ctx context.Context, manageToken string, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context) (*dto.BookingListResponse, error)
	Transition(ctx context.Context, bookingID uuid.UUID, next entity.BookingStatus) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	location        *time.Location
	cancelWindow    time.Duration
	bookingTypeRepo repository.BookingTypeRepository
	bookingRepo     repository.BookingRepository
	weeklySlotRepo  repository.WeeklySlotRepository
	overrideRepo    repository.OverrideRepository
	slotHoldService *service.SlotHoldService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	location *time.Location,
	cancelWindow time.Duration,
	bookingTypeRepo repository.BookingTypeRepository,
	bookingRepo repository.BookingRepository,
	weeklySlotRepo repository.WeeklySlotRepository,
	overrideRepo repository.OverrideRepository,
	slotHoldService *service.SlotHoldService,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		location:        location,
		cancelWindow:    cancelWindow,
		bookingTypeRepo: bookingTypeRepo,
		bookingRepo:     bookingRepo,
		weeklySlotRepo:  weeklySlotRepo,
		overrideRepo:    overrideRepo,
		slotHoldService: slotHoldService,
	}
}

// CreateBooking books a slot for the public flow.
//
// Flow:
// 1. Resolve booking type and parse the requested start time
// 2. Verify the start time is a structurally open slot (window, weekly
//    schedule, overrides)
// 3. Check for overlapping bookings in the DB
// 4. Acquire the Redis slot hold (serializes concurrent submissions)
// 5. Insert the booking as pending with a fresh manage token
// 6. If the insert fails -> compensate: release the hold
func (u *bookingUsecase) CreateBooking(ctx context.Context, slug string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	db := u.db.WithContext(ctx)

	bookingType, err := u.bookingTypeRepo.FindBySlug(db, slug)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", slug, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	start = start.In(u.location)
	end := start.Add(bookingType.Duration())

	if err := u.validateOpenSlot(ctx, bookingType, start); err != nil {
		return nil, err
	}

	overlapping, err := u.bookingRepo.FindOverlapping(db, start, end, uuid.Nil)
	if err != nil {
		u.log.Warnf("Failed to check overlapping bookings: %+v", err)
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrSlotTaken
	}

	holderID := uuid.New()
	if err := u.slotHoldService.Acquire(ctx, start, holderID); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to acquire slot hold for %s: %+v", start, err)
		return nil, err
	}

	manageToken, err := token.NewManageToken()
	if err != nil {
		u.log.Errorf("Failed to generate manage token: %+v", err)
		return nil, err
	}

	booking := &entity.Booking{
		ID:            holderID,
		BookingTypeID: bookingType.ID,
		ManageToken:   manageToken,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		StartTime:     start,
		EndTime:       end,
		Status:        entity.BookingStatusPending,
	}

	if err := u.bookingRepo.Create(db, booking); err != nil {
		u.log.Errorf("Failed to insert booking, compensating slot hold: %+v", err)

		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		u.slotHoldService.Release(releaseCtx, start)

		return nil, err
	}

	full, err := u.bookingRepo.FindByID(db, booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return converter.BookingToResponse(booking), nil
	}

	u.log.Infof("Booking created: id=%s, type=%s, start=%s", booking.ID, slug, start.Format(time.RFC3339))
	return converter.BookingToResponse(full), nil
}

// GetByManageToken returns the token-scoped self-service view, including
// the authoritative can_cancel/can_reschedule flags.
func (u *bookingUsecase) GetByManageToken(ctx context.Context, manageToken string) (*dto.ManageBookingResponse, error) {
	booking, err := u.bookingRepo.FindByManageToken(u.db.WithContext(ctx), manageToken)
	if err != nil {
		u.log.Warnf("Failed to find booking by token: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToManageResponse(booking, time.Now().In(u.location), u.cancelWindow), nil
}

// CancelByToken cancels a booking through its manage token. The cutoff is
// enforced here, not in any client: the flags the manage view renders and
// the check below come from the same rule.
func (u *bookingUsecase) CancelByToken(ctx context.Context, manageToken string, req *dto.CancelBookingRequest) error {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByManageToken(db, manageToken)
	if err != nil {
		u.log.Warnf("Failed to find booking by token: %+v", err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.Status.IsTerminal() {
		return ErrBookingFinal
	}

	now := time.Now().In(u.location)
	if !booking.CanCancel(now, u.cancelWindow) {
		return ErrCancelWindowClosed
	}

	rows, err := u.bookingRepo.CancelWithReason(db, booking.ID, req.Reason)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", booking.ID, err)
		return err
	}
	if rows == 0 {
		// Lost a race with another transition.
		return ErrBookingFinal
	}

	u.slotHoldService.Release(ctx, booking.StartTime)

	u.log.Infof("Booking cancelled: id=%s", booking.ID)
	return nil
}

// RescheduleByToken re-points an existing booking at a newly selected slot,
// preserving its id, token and contact details. The new start time is
// validated exactly like a creation.
func (u *bookingUsecase) RescheduleByToken(ctx context.Context, manageToken string, req *dto.RescheduleBookingRequest) (*dto.BookingResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByManageToken(db, manageToken)
	if err != nil {
		u.log.Warnf("Failed to find booking by token: %+v", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status.IsTerminal() {
		return nil, ErrBookingFinal
	}

	now := time.Now().In(u.location)
	if !booking.CanReschedule(now, u.cancelWindow) {
		return nil, ErrRescheduleWindowClosed
	}

	newStart, err := time.Parse(time.RFC3339, req.NewStartTime)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	newStart = newStart.In(u.location)

	bookingType := &booking.BookingType
	newEnd := newStart.Add(bookingType.Duration())

	if err := u.validateOpenSlot(ctx, bookingType, newStart); err != nil {
		return nil, err
	}

	overlapping, err := u.bookingRepo.FindOverlapping(db, newStart, newEnd, booking.ID)
	if err != nil {
		u.log.Warnf("Failed to check overlapping bookings: %+v", err)
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, ErrSlotTaken
	}

	if err := u.slotHoldService.Acquire(ctx, newStart, booking.ID); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to acquire slot hold for %s: %+v", newStart, err)
		return nil, err
	}

	oldStart := booking.StartTime
	if err := u.bookingRepo.UpdateTimes(db, booking.ID, newStart, newEnd); err != nil {
		u.log.Errorf("Failed to reschedule booking %s, compensating slot hold: %+v", booking.ID, err)

		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		u.slotHoldService.Release(releaseCtx, newStart)

		return nil, err
	}

	u.slotHoldService.Release(ctx, oldStart)

	full, err := u.bookingRepo.FindByID(db, booking.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		booking.StartTime = newStart
		booking.EndTime = newEnd
		return converter.BookingToResponse(booking), nil
	}

	u.log.Infof("Booking rescheduled: id=%s, start=%s", booking.ID, newStart.Format(time.RFC3339))
	return converter.BookingToResponse(full), nil
}

// ListBookings returns all bookings for the practitioner dashboard.
func (u *bookingUsecase) ListBookings(ctx context.Context) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// Transition drives a practitioner-side status change (confirm, complete,
// no-show). The update is conditional on the current status, so two
// concurrent transitions cannot both win.
func (u *bookingUsecase) Transition(ctx context.Context, bookingID uuid.UUID, next entity.BookingStatus) (*dto.BookingResponse, error) {
	db := u.db.WithContext(ctx)

	booking, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !booking.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.bookingRepo.UpdateStatus(db, bookingID, booking.Status, next)
	if err != nil {
		u.log.Warnf("Failed to update booking %s status: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	full, err := u.bookingRepo.FindByID(db, bookingID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", bookingID, err)
		booking.Status = next
		return converter.BookingToResponse(booking), nil
	}

	u.log.Infof("Booking transitioned: id=%s, status=%s", bookingID, next)
	return converter.BookingToResponse(full), nil
}

// validateOpenSlot checks that start lands on a slot the availability
// calculator would offer for that date: inside the eligibility window and
// on the grid produced by the weekly schedule and overrides. Occupancy is
// checked separately so callers can distinguish "never offered" from
// "taken meanwhile".
func (u *bookingUsecase) validateOpenSlot(ctx context.Context, bookingType *entity.BookingType, start time.Time) error {
	db := u.db.WithContext(ctx)
	now := time.Now().In(u.location)

	if start.Before(now) {
		return ErrSlotUnavailable
	}
	if !scheduling.DateSelectable(bookingType, now, start) {
		return ErrSlotUnavailable
	}

	weekly, err := u.weeklySlotRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load weekly schedule: %+v", err)
		return err
	}

	override, err := u.overrideRepo.FindByDate(db, scheduling.Midnight(start))
	if err != nil {
		u.log.Warnf("Failed to load override: %+v", err)
		return err
	}

	for _, slot := range scheduling.DaySlots(bookingType, weekly, override, nil, start, u.location) {
		if slot.StartTime.Equal(start) {
			return nil
		}
	}
	return ErrSlotUnavailable
}
