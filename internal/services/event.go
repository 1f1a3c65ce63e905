package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"minieventms/internal/clock"
	"minieventms/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	clk            clock.Clock
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repository and clock.
func NewEventService(eventRepo domain.EventRepository, clk clock.Clock, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		clk:            clk,
		contextTimeout: timeout,
	}
}

// CreateEvent runs the admission checks in order, short-circuiting on the
// first failure: duplicate name, invalid window, window not in the future.
func (s *eventService) CreateEvent(ctx context.Context, name, location string, startTime, endTime time.Time, maxCapacity int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	start := startTime.UTC()
	end := endTime.UTC()

	if _, err := s.eventRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrDuplicateName
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event by name: %w", err)
	}

	if !start.Before(end) {
		return nil, domain.ErrInvalidWindow
	}
	if !start.After(s.clk.Now()) {
		return nil, domain.ErrWindowNotFuture
	}

	event := domain.NewEvent(name, location, start, end, maxCapacity)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		// Unique constraint backstop for a name created between check and insert.
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The date filter only applies when both bounds are present.
	if (filter.StartDate == nil) != (filter.EndDate == nil) {
		filter.StartDate = nil
		filter.EndDate = nil
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
