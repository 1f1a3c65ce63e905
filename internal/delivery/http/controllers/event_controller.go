package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"minieventms/internal/delivery/http/helpers"
	"minieventms/internal/domain"
	"minieventms/internal/timeutil"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /api/v1/events. Timestamps
// without a zone offset are interpreted as IST.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	MaxCapacity int    `json:"max_capacity"`

	start time.Time
	end   time.Time
}

// Validate implements helpers.Validator. On success the parsed absolute
// instants are stored on the receiver.
func (r *CreateEventRequest) Validate() []string {
	var errs []string
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	r.Location = strings.TrimSpace(r.Location)
	if r.Location == "" {
		errs = append(errs, "location is required")
	}
	if r.MaxCapacity <= 0 {
		errs = append(errs, "max_capacity must be greater than 0")
	}
	var err error
	if r.start, err = timeutil.ParseInput(r.StartTime); err != nil {
		errs = append(errs, "start_time must be a valid ISO 8601 timestamp")
	}
	if r.end, err = timeutil.ParseInput(r.EndTime); err != nil {
		errs = append(errs, "end_time must be a valid ISO 8601 timestamp")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /api/v1/events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event with a unique name and a future time window. Timestamps without a zone offset are interpreted as IST and stored in UTC.
// @Tags events
// @Accept json
// @Produce json
// @Param body body controllers.CreateEventRequest true "Event fields"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), req.Name, req.Location, req.start, req.end, req.MaxCapacity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Event name must be unique.")
		case errors.Is(err, domain.ErrInvalidWindow):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Start time must be before end time.")
		case errors.Is(err, domain.ErrWindowNotFuture):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Start time must be in the future.")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEventsSuccessResponse is the success response envelope for GET /api/v1/events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists events, optionally filtered by location substring and a start-time date range (both bounds required). Timestamps are returned in the requested output timezone (default UTC).
// @Tags events
// @Produce json
// @Param location query string false "Case-insensitive location substring"
// @Param start_date query string false "Range start (date or RFC 3339, UTC)"
// @Param end_date query string false "Range end (date or RFC 3339, UTC)"
// @Param tz query string false "Output timezone (IANA name, default UTC)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tz := q.Get("tz")
	if tz == "" {
		tz = "UTC"
	}
	loc, err := timeutil.Zone(tz)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid timezone: "+tz)
		return
	}

	filter := domain.EventFilter{Location: q.Get("location")}
	if s := q.Get("start_date"); s != "" {
		t, err := timeutil.ParseQueryDate(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "start_date must be a valid date")
			return
		}
		filter.StartDate = &t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := timeutil.ParseQueryDate(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "end_date must be a valid date")
			return
		}
		filter.EndDate = &t
	}

	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}

	// Convert stored UTC instants to the requested display zone.
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		converted := *e
		converted.StartTime = e.StartTime.In(loc)
		converted.EndTime = e.EndTime.In(loc)
		out = append(out, &converted)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
