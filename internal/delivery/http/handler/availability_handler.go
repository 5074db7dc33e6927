package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coach-booking-service/internal/delivery/dto"
	"coach-booking-service/internal/usecase"
	"coach-booking-service/pkg/response"
	"coach-booking-service/pkg/validator"

	"github.com/gorilla/mux"
)

// AvailabilityHandler manages the practitioner's weekly hours and
// date-specific overrides.
type AvailabilityHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	validator       *validator.CustomValidator
}

func NewAvailabilityHandler(scheduleUsecase usecase.ScheduleUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *AvailabilityHandler) GetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	weekly, err := h.scheduleUsecase.GetWeeklyAvailability(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get weekly availability")
		return
	}

	response.Success(w, http.StatusOK, "Weekly availability retrieved successfully", weekly)
}

func (h *AvailabilityHandler) UpdateWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWeeklyAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	weekly, err := h.scheduleUsecase.UpdateWeeklyAvailability(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidInterval:
			response.Error(w, http.StatusBadRequest, "Interval start must be before end", nil)
		default:
			response.InternalServerError(w, "Failed to update weekly availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Weekly availability updated successfully", weekly)
}

func (h *AvailabilityHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	overrides, err := h.scheduleUsecase.ListOverrides(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list overrides")
		return
	}

	response.Success(w, http.StatusOK, "Overrides retrieved successfully", overrides)
}

func (h *AvailabilityHandler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	override, err := h.scheduleUsecase.CreateOverride(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date, use YYYY-MM-DD", nil)
		case usecase.ErrInvalidInterval:
			response.Error(w, http.StatusBadRequest, "Interval start must be before end", nil)
		case usecase.ErrOverrideIntervalMissing:
			response.Error(w, http.StatusBadRequest, "An available override requires start and end times", nil)
		case usecase.ErrOverrideExists:
			response.Conflict(w, "An override already exists for this date")
		default:
			response.InternalServerError(w, "Failed to create override")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Override created successfully", override)
}

func (h *AvailabilityHandler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid override ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteOverride(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrOverrideNotFound:
			response.NotFound(w, "Override not found")
		default:
			response.InternalServerError(w, "Failed to delete override")
		}
		return
	}

	response.Success(w, http.StatusOK, "Override deleted successfully", nil)
}
