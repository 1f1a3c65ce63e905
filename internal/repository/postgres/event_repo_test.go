package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"minieventms/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name:  "success",
			event: domain.NewEvent("Demo", "Pune", start, end, 100),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, location, start_time, end_time, max_capacity\)`).
					WithArgs("Demo", "Pune", start, end, 100).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "duplicate name",
			event: domain.NewEvent("Demo", "Pune", start, end, 100),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_name_key"})
			},
			wantErr: domain.ErrDuplicateName,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Demo", "Pune", start, end, 100),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time, end_time, max_capacity`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "start_time", "end_time", "max_capacity"}).
						AddRow("ev-1", "Demo", "Pune", start, end, 100))
			},
			want: &domain.Event{
				ID:          "ev-1",
				Name:        "Demo",
				Location:    "Pune",
				StartTime:   start,
				EndTime:     end,
				MaxCapacity: 100,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time, end_time, max_capacity`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByName(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, location, start_time, end_time, max_capacity`).
		WithArgs("Missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	_, err = repo.GetByName(ctx, "Missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	rangeStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	eventRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "location", "start_time", "end_time", "max_capacity"}).
			AddRow("ev-1", "Demo", "Pune", start, end, 100)
	}

	tests := []struct {
		name      string
		filter    domain.EventFilter
		mock      func(mock sqlmock.Sqlmock)
		wantCount int
	}{
		{
			name:   "no filters",
			filter: domain.EventFilter{},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, location, start_time, end_time, max_capacity`).
					WillReturnRows(eventRows())
			},
			wantCount: 1,
		},
		{
			name:   "location filter",
			filter: domain.EventFilter{Location: "pune"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE location ILIKE`).
					WithArgs("pune").
					WillReturnRows(eventRows())
			},
			wantCount: 1,
		},
		{
			name:   "date range filter",
			filter: domain.EventFilter{StartDate: &rangeStart, EndDate: &rangeEnd},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE start_time BETWEEN`).
					WithArgs(rangeStart, rangeEnd).
					WillReturnRows(eventRows())
			},
			wantCount: 1,
		},
		{
			name:   "no rows",
			filter: domain.EventFilter{Location: "nowhere"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE location ILIKE`).
					WithArgs("nowhere").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "location", "start_time", "end_time", "max_capacity"}))
			},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			require.Len(t, got, tt.wantCount)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
