package usecase

import (
	"context"
	"errors"

	"coach-booking-service/internal/converter"
	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/domain/entity"
	"coach-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSlugAlreadyExists = errors.New("slug already exists")

type BookingTypeUsecase interface {
	CreateBookingType(ctx context.Context, req *dto.CreateBookingTypeRequest) (*dto.BookingTypeResponse, error)
	GetBookingType(ctx context.Context, id uuid.UUID) (*dto.BookingTypeResponse, error)
	GetAllBookingTypes(ctx context.Context) (*dto.BookingTypeListResponse, error)
	UpdateBookingType(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingTypeRequest) (*dto.BookingTypeResponse, error)
	DeactivateBookingType(ctx context.Context, id uuid.UUID) error
}

type bookingTypeUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	bookingTypeRepo repository.BookingTypeRepository
}

func NewBookingTypeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingTypeRepo repository.BookingTypeRepository,
) BookingTypeUsecase {
	return &bookingTypeUsecase{
		db:              db,
		log:             log,
		bookingTypeRepo: bookingTypeRepo,
	}
}

func (u *bookingTypeUsecase) CreateBookingType(ctx context.Context, req *dto.CreateBookingTypeRequest) (*dto.BookingTypeResponse, error) {
	bookingType := &entity.BookingType{
		Slug:            req.Slug,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		MinNoticeHours:  req.MinNoticeHours,
		MaxAdvanceDays:  req.MaxAdvanceDays,
	}

	if err := u.bookingTypeRepo.Create(u.db.WithContext(ctx), bookingType); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugAlreadyExists
		}
		u.log.Warnf("Failed to create booking type: %+v", err)
		return nil, err
	}

	u.log.Infof("Booking type created: slug=%s", req.Slug)
	return converter.BookingTypeToResponse(bookingType), nil
}

func (u *bookingTypeUsecase) GetBookingType(ctx context.Context, id uuid.UUID) (*dto.BookingTypeResponse, error) {
	bookingType, err := u.bookingTypeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", id, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	return converter.BookingTypeToResponse(bookingType), nil
}

func (u *bookingTypeUsecase) GetAllBookingTypes(ctx context.Context) (*dto.BookingTypeListResponse, error) {
	bookingTypes, err := u.bookingTypeRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list booking types: %+v", err)
		return nil, err
	}

	return &dto.BookingTypeListResponse{
		BookingTypes: converter.BookingTypesToResponses(bookingTypes),
		Total:        len(bookingTypes),
	}, nil
}

func (u *bookingTypeUsecase) UpdateBookingType(ctx context.Context, id uuid.UUID, req *dto.UpdateBookingTypeRequest) (*dto.BookingTypeResponse, error) {
	db := u.db.WithContext(ctx)

	bookingType, err := u.bookingTypeRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find booking type %s: %+v", id, err)
		return nil, err
	}
	if bookingType == nil {
		return nil, ErrBookingTypeNotFound
	}

	if req.Name != "" {
		bookingType.Name = req.Name
	}
	if req.Description != nil {
		bookingType.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		bookingType.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		bookingType.Price = req.Price
	}
	if req.MinNoticeHours != nil {
		bookingType.MinNoticeHours = *req.MinNoticeHours
	}
	if req.MaxAdvanceDays != nil {
		bookingType.MaxAdvanceDays = *req.MaxAdvanceDays
	}

	if err := u.bookingTypeRepo.Update(db, bookingType); err != nil {
		u.log.Warnf("Failed to update booking type %s: %+v", id, err)
		return nil, err
	}

	return converter.BookingTypeToResponse(bookingType), nil
}

func (u *bookingTypeUsecase) DeactivateBookingType(ctx context.Context, id uuid.UUID) error {
	rows, err := u.bookingTypeRepo.Deactivate(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to deactivate booking type %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBookingTypeNotFound
	}

	u.log.Infof("Booking type deactivated: id=%s", id)
	return nil
}
