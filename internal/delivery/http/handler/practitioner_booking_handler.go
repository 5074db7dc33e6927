package handler

import (
	"net/http"

	"coach-booking-service/internal/domain/entity"
	"coach-booking-service/internal/usecase"
	"coach-booking-service/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// PractitionerBookingHandler drives the back-office side of the booking
// lifecycle: the dashboard list and the confirm/complete/no-show
// transitions.
type PractitionerBookingHandler struct {
	bookingUsecase usecase.BookingUsecase
}

func NewPractitionerBookingHandler(bookingUsecase usecase.BookingUsecase) *PractitionerBookingHandler {
	return &PractitionerBookingHandler{bookingUsecase: bookingUsecase}
}

func (h *PractitionerBookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingUsecase.ListBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *PractitionerBookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusConfirmed)
}

func (h *PractitionerBookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusCompleted)
}

func (h *PractitionerBookingHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, entity.BookingStatusNoShow)
}

func (h *PractitionerBookingHandler) transition(w http.ResponseWriter, r *http.Request, next entity.BookingStatus) {
	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	booking, err := h.bookingUsecase.Transition(r.Context(), bookingID, next)
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Booking cannot move to the requested status")
		default:
			response.InternalServerError(w, "Failed to update booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}
