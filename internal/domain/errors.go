package domain

import "errors"

// Sentinel errors returned by services and repositories. Handlers map these to
// HTTP status codes and user-facing messages.
var (
	ErrNotFound           = errors.New("event not found")
	ErrDuplicateName      = errors.New("event name already exists")
	ErrInvalidWindow      = errors.New("start time must be before end time")
	ErrWindowNotFuture    = errors.New("start time must be in the future")
	ErrRegistrationClosed = errors.New("registration closed: event has already started")
	ErrEventFull          = errors.New("event is fully booked")
	ErrDuplicateEmail     = errors.New("email already registered for this event")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidInput       = errors.New("invalid input")
)
