package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"mergingtonactivities/internal/domain"
)

func TestRosterEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO roster_events`).
					WithArgs("Chess Club", "ada@mergington.edu", "signup", at).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("42"))
			},
			wantID: "42",
		},
		{
			name: "check violation",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO roster_events`).
					WillReturnError(&pq.Error{Code: "23514"})
			},
			wantErr: true,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO roster_events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRosterEventRepository(db)
			ev := domain.NewRosterEvent("Chess Club", "ada@mergington.edu", domain.RosterActionSignup, at)
			err = repo.Create(ctx, ev)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, ev.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRosterEventRepository_ListByActivity(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 9, 1, 15, 30, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	t.Run("returns events in order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, activity_name, email, action, created_at\s+FROM roster_events`).
			WithArgs("Math Club").
			WillReturnRows(sqlmock.NewRows([]string{"id", "activity_name", "email", "action", "created_at"}).
				AddRow("1", "Math Club", "ada@mergington.edu", "signup", t1).
				AddRow("2", "Math Club", "ada@mergington.edu", "unregister", t2))

		events, err := NewRosterEventRepository(db).ListByActivity(ctx, "Math Club")
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, domain.RosterActionSignup, events[0].Action)
		require.Equal(t, domain.RosterActionUnregister, events[1].Action)
		require.Equal(t, t2, events[1].CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM roster_events`).
			WithArgs("Art Club").
			WillReturnRows(sqlmock.NewRows([]string{"id", "activity_name", "email", "action", "created_at"}))

		events, err := NewRosterEventRepository(db).ListByActivity(ctx, "Art Club")
		require.NoError(t, err)
		require.NotNil(t, events)
		require.Empty(t, events)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM roster_events`).WillReturnError(sql.ErrConnDone)

		_, err = NewRosterEventRepository(db).ListByActivity(ctx, "Art Club")
		require.ErrorIs(t, err, sql.ErrConnDone)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scan error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM roster_events`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "activity_name", "email", "action", "created_at"}).
				AddRow("1", "Art Club", "ada@mergington.edu", "signup", "not a time"))

		_, err = NewRosterEventRepository(db).ListByActivity(ctx, "Art Club")
		require.Error(t, err)
	})
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS roster_events`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}
