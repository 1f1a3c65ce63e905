package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"minieventms/internal/delivery/http/controllers"
	"minieventms/internal/delivery/http/middleware"
	"minieventms/internal/domain"
)

type stubEventService struct{}

func (stubEventService) CreateEvent(ctx context.Context, name, location string, startTime, endTime time.Time, maxCapacity int) (*domain.Event, error) {
	return &domain.Event{ID: "ev-1", Name: name, Location: location, StartTime: startTime, EndTime: endTime, MaxCapacity: maxCapacity}, nil
}

func (stubEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

type stubAttendeeService struct{}

func (stubAttendeeService) RegisterAttendee(ctx context.Context, eventID, name, email string) (*domain.Attendee, error) {
	return &domain.Attendee{ID: "at-1", Name: name, Email: email, EventID: eventID}, nil
}

func (stubAttendeeService) ListAttendees(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	return []*domain.Attendee{}, 0, nil
}

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := middleware.NewRateLimiter(0)
	t.Cleanup(limiter.Stop)
	return NewRouter(
		controllers.NewEventController(logger, stubEventService{}),
		controllers.NewAttendeeController(logger, stubAttendeeService{}),
		limiter,
	)
}

func TestHealthCheck(t *testing.T) {
	mux := newTestRouter(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data["message"] != "Event Management API is running." {
		t.Fatalf("unexpected message %q", body.Data["message"])
	}
}

func TestRouter_Routes(t *testing.T) {
	mux := newTestRouter(t)
	eventID := "7a9f66b8-3c1d-4e2a-9f10-0d8b6f3c5a21"

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "create event",
			method:     http.MethodPost,
			path:       "/api/v1/events",
			body:       `{"name":"Demo","location":"Pune","start_time":"2025-06-02T10:00:00","end_time":"2025-06-02T14:00:00","max_capacity":100}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "list events",
			method:     http.MethodGet,
			path:       "/api/v1/events",
			wantStatus: http.StatusOK,
		},
		{
			name:       "register attendee",
			method:     http.MethodPost,
			path:       "/api/v1/events/" + eventID + "/register",
			body:       `{"name":"Alice","email":"alice@example.com"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "list attendees",
			method:     http.MethodGet,
			path:       "/api/v1/events/" + eventID + "/attendees",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong method",
			method:     http.MethodDelete,
			path:       "/api/v1/events",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, body))
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (body %q)", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
