package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minieventms/internal/clock"
	"minieventms/internal/domain"
)

// Stale per-event locks are swept so the map stays bounded over the life of
// the process. An entry is stale once no registration has touched it for
// lockTTL; registration closes at event start, so locks go cold on their own.
const (
	lockTTL        = 10 * time.Minute
	lockSweepEvery = time.Minute
)

type eventLockEntry struct {
	mu       sync.Mutex
	lastSeen time.Time
}

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	clk            clock.Clock
	contextTimeout time.Duration

	mu            sync.Mutex
	eventLocks    map[string]*eventLockEntry
	nextLockSweep time.Time
}

// NewAttendeeService creates an AttendeeService with the given repositories and clock.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	clk clock.Clock,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		clk:            clk,
		contextTimeout: timeout,
		eventLocks:     make(map[string]*eventLockEntry),
	}
}

// eventLock returns the mutex serializing admission for one event. Two
// concurrent registrations for the same event must not both pass the capacity
// count before either insert commits.
func (s *attendeeService) eventLock(eventID string) *sync.Mutex {
	now := s.clk.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.After(s.nextLockSweep) {
		s.sweepEventLocks(now)
		s.nextLockSweep = now.Add(lockSweepEvery)
	}

	e, ok := s.eventLocks[eventID]
	if !ok {
		e = &eventLockEntry{}
		s.eventLocks[eventID] = e
	}
	e.lastSeen = now
	return &e.mu
}

// sweepEventLocks drops stale, unheld entries. Callers hold s.mu, so no new
// acquisition can race the delete; TryLock keeps an in-flight registration's
// lock alive.
func (s *attendeeService) sweepEventLocks(now time.Time) {
	for id, e := range s.eventLocks {
		if now.Sub(e.lastSeen) > lockTTL && e.mu.TryLock() {
			e.mu.Unlock()
			delete(s.eventLocks, id)
		}
	}
}

// RegisterAttendee admits one registration. The checks run strictly in order
// under the per-event lock: event exists, registration still open, capacity
// left, email not already registered. The first failure wins; an event that is
// both full and already holds the email reports ErrEventFull.
func (s *attendeeService) RegisterAttendee(ctx context.Context, eventID, name, email string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	l := s.eventLock(eventID)
	l.Lock()
	defer l.Unlock()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if !s.clk.Now().Before(event.StartTime) {
		return nil, domain.ErrRegistrationClosed
	}

	count, err := s.attendeeRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	if count >= event.MaxCapacity {
		return nil, domain.ErrEventFull
	}

	exists, err := s.attendeeRepo.ExistsByEventIDAndEmail(ctx, eventID, email)
	if err != nil {
		return nil, fmt.Errorf("check duplicate email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	attendee := domain.NewAttendee(name, email, eventID)
	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		// Unique constraint backstop; the pre-check above makes this rare.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create attendee: %w", err)
	}
	return attendee, nil
}

func (s *attendeeService) ListAttendees(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	attendees, total, err := s.attendeeRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, total, nil
}
