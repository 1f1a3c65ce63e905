package domain

import (
	"context"
	"time"
)

// Event represents a registrable event with a capacity and a time window.
// Start and end instants are stored in UTC.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name, location string, startTime, endTime time.Time, maxCapacity int) *Event {
	return &Event{
		Name:        name,
		Location:    location,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
	}
}

// EventFilter holds optional list filters. The date range applies only when
// both bounds are set; a one-sided range is ignored by the service.
type EventFilter struct {
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
}

// EventService defines event admission and listing operations.
type EventService interface {
	// CreateEvent validates name uniqueness and the time window, then persists
	// the event. Start and end are absolute instants (already normalized).
	CreateEvent(ctx context.Context, name, location string, startTime, endTime time.Time, maxCapacity int) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
}
