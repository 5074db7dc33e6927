package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/usecase"
	"coach-booking-service/pkg/response"
	"coach-booking-service/pkg/validator"

	"github.com/gorilla/mux"
)

// PublicBookingHandler serves the unauthenticated booking flow: booking
// type pages, the date picker, slot lists, creation, and the token-scoped
// manage view.
type PublicBookingHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	bookingUsecase      usecase.BookingUsecase
	validator           *validator.CustomValidator
}

func NewPublicBookingHandler(
	availabilityUsecase usecase.AvailabilityUsecase,
	bookingUsecase usecase.BookingUsecase,
	validator *validator.CustomValidator,
) *PublicBookingHandler {
	return &PublicBookingHandler{
		availabilityUsecase: availabilityUsecase,
		bookingUsecase:      bookingUsecase,
		validator:           validator,
	}
}

func (h *PublicBookingHandler) GetBookingType(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	bookingType, err := h.availabilityUsecase.GetBookingType(r.Context(), slug)
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

func (h *PublicBookingHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid year", nil)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid month", nil)
			return
		}
		month = parsed
	}

	calendar, err := h.availabilityUsecase.GetCalendar(r.Context(), slug, year, month)
	if err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		case usecase.ErrInvalidMonth:
			response.Error(w, http.StatusBadRequest, "Invalid month", nil)
		default:
			response.InternalServerError(w, "Failed to build calendar")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar retrieved successfully", calendar)
}

func (h *PublicBookingHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	date := r.URL.Query().Get("date")

	slots, err := h.availabilityUsecase.GetSlots(r.Context(), slug, date)
	if err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to get slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *PublicBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), slug, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingTypeNotFound:
			response.NotFound(w, "Booking type not found")
		case usecase.ErrInvalidStartTime:
			response.Error(w, http.StatusBadRequest, "Invalid start time", nil)
		case usecase.ErrSlotUnavailable, usecase.ErrSlotTaken:
			response.Conflict(w, "This time is no longer available, please pick another time")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *PublicBookingHandler) GetManagedBooking(w http.ResponseWriter, r *http.Request) {
	manageToken := mux.Vars(r)["token"]

	booking, err := h.bookingUsecase.GetByManageToken(r.Context(), manageToken)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		default:
			response.InternalServerError(w, "Failed to get booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *PublicBookingHandler) CancelManagedBooking(w http.ResponseWriter, r *http.Request) {
	manageToken := mux.Vars(r)["token"]

	// An empty body means cancelling without a reason.
	var req dto.CancelBookingRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.bookingUsecase.CancelByToken(r.Context(), manageToken, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingFinal:
			response.Conflict(w, "Booking already reached a final state")
		case usecase.ErrCancelWindowClosed:
			response.Forbidden(w, "Booking can no longer be cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", nil)
}

func (h *PublicBookingHandler) RescheduleManagedBooking(w http.ResponseWriter, r *http.Request) {
	manageToken := mux.Vars(r)["token"]

	var req dto.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.RescheduleByToken(r.Context(), manageToken, &req)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingFinal:
			response.Conflict(w, "Booking already reached a final state")
		case usecase.ErrRescheduleWindowClosed:
			response.Forbidden(w, "Booking can no longer be rescheduled")
		case usecase.ErrInvalidStartTime:
			response.Error(w, http.StatusBadRequest, "Invalid start time", nil)
		case usecase.ErrSlotUnavailable, usecase.ErrSlotTaken:
			response.Conflict(w, "This time is no longer available, please pick another time")
		default:
			response.InternalServerError(w, "Failed to reschedule booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking rescheduled successfully", booking)
}
