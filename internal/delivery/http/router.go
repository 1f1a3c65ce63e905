package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"minieventms/internal/delivery/http/controllers"
	"minieventms/internal/delivery/http/helpers"
	"minieventms/internal/delivery/http/middleware"
)

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /events/health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
		"message": "Event Management API is running.",
	})
}

// NewRouter initializes the HTTP router with all application routes.
// The registration route is wrapped with the per-client rate limiter.
func NewRouter(
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	registrationLimiter *middleware.RateLimiter,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/events/health", HealthCheck)

	mux.HandleFunc("POST /api/v1/events", eventController.CreateEvent)
	mux.HandleFunc("GET /api/v1/events", eventController.ListEvents)

	mux.Handle("POST /api/v1/events/{eventID}/register",
		registrationLimiter.Limit(http.HandlerFunc(attendeeController.RegisterAttendee)))
	mux.HandleFunc("GET /api/v1/events/{eventID}/attendees", attendeeController.ListAttendees)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
