package handler

import (
	"encoding/json"
	"net/http"

	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/usecase"
	"coach-booking-service/pkg/response"
	"coach-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingTypeHandler struct {
	bookingTypeUsecase usecase.BookingTypeUsecase
	validator          *validator.CustomValidator
}

func NewBookingTypeHandler(bookingTypeUsecase usecase.BookingTypeUsecase, validator *validator.CustomValidator) *BookingTypeHandler {
	return &BookingTypeHandler{
		bookingTypeUsecase: bookingTypeUsecase,
		validator:          validator,
	}
}

func (h *BookingTypeHandler) CreateBookingType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookingType, err := h.bookingTypeUsecase.CreateBookingType(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSlugAlreadyExists:
			response.Conflict(w, "Slug already exists")
		default:
			response.InternalServerError(w, "Failed to create booking type")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking type created successfully", bookingType)
}

func (h *BookingTypeHandler) GetAllBookingTypes(w http.ResponseWriter, r *http.Request) {
	bookingTypes, err := h.bookingTypeUsecase.GetAllBookingTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list booking types")
		return
	}

	response.Success(w, http.StatusOK, "Booking types retrieved successfully", bookingTypes)
}

func (h *BookingTypeHandler) GetBookingType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking type ID", nil)
		return
	}

	bookingType, err := h.bookingTypeUsecase.GetBookingType(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		default:
			response.InternalServerError(w, "Failed to get booking type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking type retrieved successfully", bookingType)
}

func (h *BookingTypeHandler) UpdateBookingType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking type ID", nil)
		return
	}

	var req dto.UpdateBookingTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookingType, err := h.bookingTypeUsecase.UpdateBookingType(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		default:
			response.InternalServerError(w, "Failed to update booking type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking type updated successfully", bookingType)
}

func (h *BookingTypeHandler) DeactivateBookingType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking type ID", nil)
		return
	}

	if err := h.bookingTypeUsecase.DeactivateBookingType(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		default:
			response.InternalServerError(w, "Failed to deactivate booking type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking type deactivated successfully", nil)
}
