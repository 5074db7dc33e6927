package http

import (
	"net/http"

	"coach-booking-service/internal/delivery/http/handler"
	"coach-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                     *mux.Router
	authHandler                *handler.AuthHandler
	publicBookingHandler       *handler.PublicBookingHandler
	practitionerBookingHandler *handler.PractitionerBookingHandler
	bookingTypeHandler         *handler.BookingTypeHandler
	availabilityHandler        *handler.AvailabilityHandler
	authMiddleware             *middleware.AuthMiddleware
	corsMiddleware             *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	publicBookingHandler *handler.PublicBookingHandler,
	practitionerBookingHandler *handler.PractitionerBookingHandler,
	bookingTypeHandler *handler.BookingTypeHandler,
	availabilityHandler *handler.AvailabilityHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                     mux.NewRouter(),
		authHandler:                authHandler,
		publicBookingHandler:       publicBookingHandler,
		practitionerBookingHandler: practitionerBookingHandler,
		bookingTypeHandler:         bookingTypeHandler,
		availabilityHandler:        availabilityHandler,
		authMiddleware:             authMiddleware,
		corsMiddleware:             corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public booking flow
	api.HandleFunc("/booking-types/{slug}", r.publicBookingHandler.GetBookingType).Methods(http.MethodGet)
	api.HandleFunc("/booking-types/{slug}/calendar", r.publicBookingHandler.GetCalendar).Methods(http.MethodGet)
	api.HandleFunc("/booking-types/{slug}/slots", r.publicBookingHandler.GetSlots).Methods(http.MethodGet)
	api.HandleFunc("/booking-types/{slug}/bookings", r.publicBookingHandler.CreateBooking).Methods(http.MethodPost)

	// Token-scoped manage view (opaque secret, no auth)
	api.HandleFunc("/bookings/manage/{token}", r.publicBookingHandler.GetManagedBooking).Methods(http.MethodGet)
	api.HandleFunc("/bookings/manage/{token}/cancel", r.publicBookingHandler.CancelManagedBooking).Methods(http.MethodPost)
	api.HandleFunc("/bookings/manage/{token}/reschedule", r.publicBookingHandler.RescheduleManagedBooking).Methods(http.MethodPost)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Practitioner back-office (protected)
	practitioner := api.PathPrefix("/practitioner").Subrouter()
	practitioner.Use(r.authMiddleware.Authenticate)

	// Booking management
	practitioner.HandleFunc("/bookings", r.practitionerBookingHandler.ListBookings).Methods(http.MethodGet)
	practitioner.HandleFunc("/bookings/{id}/confirm", r.practitionerBookingHandler.ConfirmBooking).Methods(http.MethodPost)
	practitioner.HandleFunc("/bookings/{id}/complete", r.practitionerBookingHandler.CompleteBooking).Methods(http.MethodPost)
	practitioner.HandleFunc("/bookings/{id}/no-show", r.practitionerBookingHandler.MarkNoShow).Methods(http.MethodPost)

	// Booking type management
	practitioner.HandleFunc("/booking-types", r.bookingTypeHandler.CreateBookingType).Methods(http.MethodPost)
	practitioner.HandleFunc("/booking-types", r.bookingTypeHandler.GetAllBookingTypes).Methods(http.MethodGet)
	practitioner.HandleFunc("/booking-types/{id}", r.bookingTypeHandler.GetBookingType).Methods(http.MethodGet)
	practitioner.HandleFunc("/booking-types/{id}", r.bookingTypeHandler.UpdateBookingType).Methods(http.MethodPut)
	practitioner.HandleFunc("/booking-types/{id}", r.bookingTypeHandler.DeactivateBookingType).Methods(http.MethodDelete)

	// Weekly availability and overrides
	practitioner.HandleFunc("/availability/weekly", r.availabilityHandler.GetWeeklyAvailability).Methods(http.MethodGet)
	practitioner.HandleFunc("/availability/weekly", r.availabilityHandler.UpdateWeeklyAvailability).Methods(http.MethodPut)
	practitioner.HandleFunc("/availability/overrides", r.availabilityHandler.ListOverrides).Methods(http.MethodGet)
	practitioner.HandleFunc("/availability/overrides", r.availabilityHandler.CreateOverride).Methods(http.MethodPost)
	practitioner.HandleFunc("/availability/overrides/{id}", r.availabilityHandler.DeleteOverride).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
