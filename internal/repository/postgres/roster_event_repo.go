package postgres

import (
	"context"
	"database/sql"

	"mergingtonactivities/internal/domain"
)

const rosterEventsSchema = `
	CREATE TABLE IF NOT EXISTS roster_events (
		id            BIGSERIAL PRIMARY KEY,
		activity_name TEXT        NOT NULL,
		email         TEXT        NOT NULL,
		action        TEXT        NOT NULL CHECK (action IN ('signup', 'unregister')),
		created_at    TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS roster_events_activity_idx ON roster_events (activity_name, created_at);
`

type rosterEventRepository struct {
	DB *sql.DB
}

func NewRosterEventRepository(db *sql.DB) domain.RosterEventRepository {
	return &rosterEventRepository{DB: db}
}

// EnsureSchema creates the roster_events table and index when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, rosterEventsSchema)
	return err
}

func (r *rosterEventRepository) Create(ctx context.Context, ev *domain.RosterEvent) error {
	query := `
		INSERT INTO roster_events (activity_name, email, action, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, ev.ActivityName, ev.Email, string(ev.Action), ev.CreatedAt).
		Scan(&ev.ID)
}

func (r *rosterEventRepository) ListByActivity(ctx context.Context, activityName string) ([]*domain.RosterEvent, error) {
	query := `
		SELECT id, activity_name, email, action, created_at
		FROM roster_events
		WHERE activity_name = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, activityName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.RosterEvent
	for rows.Next() {
		ev := &domain.RosterEvent{}
		var action string
		if err := rows.Scan(&ev.ID, &ev.ActivityName, &ev.Email, &action, &ev.CreatedAt); err != nil {
			return nil, err
		}
		ev.Action = domain.RosterAction(action)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.RosterEvent{}
	}
	return events, nil
}
