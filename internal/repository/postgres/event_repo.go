package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"minieventms/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, location, start_time, end_time, max_capacity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, e.Name, e.Location, e.StartTime, e.EndTime, e.MaxCapacity).
		Scan(&e.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateName
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, location, start_time, end_time, max_capacity
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.Name, &e.Location, &e.StartTime, &e.EndTime, &e.MaxCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByName(ctx context.Context, name string) (*domain.Event, error) {
	query := `
		SELECT id, name, location, start_time, end_time, max_capacity
		FROM events
		WHERE name = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, name).
		Scan(&e.ID, &e.Name, &e.Location, &e.StartTime, &e.EndTime, &e.MaxCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `
		SELECT id, name, location, start_time, end_time, max_capacity
		FROM events
	`
	var clauses []string
	var args []interface{}
	n := 1
	if filter.Location != "" {
		clauses = append(clauses, fmt.Sprintf("location ILIKE '%%' || $%d || '%%'", n))
		args = append(args, filter.Location)
		n++
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		clauses = append(clauses, fmt.Sprintf("start_time BETWEEN $%d AND $%d", n, n+1))
		args = append(args, *filter.StartDate, *filter.EndDate)
		n += 2
	}
	if len(clauses) > 0 {
		query += " WHERE " + clauses[0]
		for _, c := range clauses[1:] {
			query += " AND " + c
		}
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Location, &e.StartTime, &e.EndTime, &e.MaxCapacity); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
