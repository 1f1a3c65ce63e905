package domain

import "context"

// Attendee represents a registration of one email address for one event.
// The pair (event_id, email) is unique; the same email may register for
// different events.
// swagger:model Attendee
type Attendee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID string `json:"event_id"`
}

// NewAttendee returns a new Attendee. ID is set by the repository on create.
func NewAttendee(name, email, eventID string) *Attendee {
	return &Attendee{
		Name:    name,
		Email:   email,
		EventID: eventID,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
	ExistsByEventIDAndEmail(ctx context.Context, eventID, email string) (bool, error)
	// ListByEventID returns one page of attendees plus the total count for the event.
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Attendee, int, error)
}

// AttendeeService defines registration admission and attendee listing.
type AttendeeService interface {
	// RegisterAttendee admits one registration: the event must exist, its start
	// instant must be in the future, capacity must not be exhausted, and the
	// email must not already be registered for the event. Checks run in that
	// order and the first failure wins.
	RegisterAttendee(ctx context.Context, eventID, name, email string) (*Attendee, error)
	ListAttendees(ctx context.Context, eventID string, params PaginationParams) ([]*Attendee, int, error)
}
