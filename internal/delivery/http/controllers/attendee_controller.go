package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"minieventms/internal/delivery/http/helpers"
	"minieventms/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterAttendeeRequest is the request body for POST /api/v1/events/{eventID}/register.
type RegisterAttendeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (r *RegisterAttendeeRequest) Validate() []string {
	var errs []string
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		errs = append(errs, "email is required")
	} else if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		errs = append(errs, "email must be a valid address")
	}
	return errs
}

// RegisterAttendeeSuccessResponse is the success response envelope for POST /api/v1/events/{eventID}/register (201).
type RegisterAttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Registers an attendee subject to event existence, timing, capacity, and duplicate-email checks, evaluated in that order.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.RegisterAttendeeRequest true "Attendee fields"
// @Success 201 {object} controllers.RegisterAttendeeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: rate_limited"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	attendee, err := c.Service.RegisterAttendee(r.Context(), eventID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
		case errors.Is(err, domain.ErrRegistrationClosed):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Registration closed: event has already started.")
		case errors.Is(err, domain.ErrEventFull):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Event is fully booked.")
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Email already registered for this event.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// ListAttendeesData is the data object for GET /api/v1/events/{eventID}/attendees.
type ListAttendeesData struct {
	Attendees  []*domain.Attendee     `json:"attendees"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListAttendeesSuccessResponse is the success response envelope for GET /api/v1/events/{eventID}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data  *ListAttendeesData `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListAttendees godoc
// @Summary List attendees for an event
// @Description Returns one page of attendees for the event, ordered by registration time.
// @Tags attendees
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page (1-based, default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.ListAttendeesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	params := helpers.ParsePagination(r)
	attendees, total, err := c.Service.ListAttendees(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event not found.")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, &ListAttendeesData{
		Attendees:  attendees,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
