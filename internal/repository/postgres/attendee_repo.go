package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"minieventms/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (name, email, event_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Name, a.Email, a.EventID).
		Scan(&a.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM attendees WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendeeRepository) ExistsByEventIDAndEmail(ctx context.Context, eventID, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM attendees WHERE event_id = $1 AND email = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Attendee, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, event_id
		FROM attendees
		WHERE event_id = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.EventID); err != nil {
			return nil, 0, err
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return attendees, total, nil
}
