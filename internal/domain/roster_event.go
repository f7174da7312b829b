package domain

import (
	"context"
	"time"
)

// RosterAction is the kind of roster change recorded in the audit log.
type RosterAction string

const (
	RosterActionSignup     RosterAction = "signup"
	RosterActionUnregister RosterAction = "unregister"
)

// RosterEvent is an audit record of a successful signup or unregister.
type RosterEvent struct {
	ID           string       `json:"id"`
	ActivityName string       `json:"activity_name"`
	Email        string       `json:"email"`
	Action       RosterAction `json:"action"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewRosterEvent returns a RosterEvent. ID is set by the repository on create.
func NewRosterEvent(activityName, email string, action RosterAction, createdAt time.Time) *RosterEvent {
	return &RosterEvent{
		ActivityName: activityName,
		Email:        email,
		Action:       action,
		CreatedAt:    createdAt,
	}
}

// RosterEventRepository defines storage for roster audit events.
type RosterEventRepository interface {
	Create(ctx context.Context, ev *RosterEvent) error
	ListByActivity(ctx context.Context, activityName string) ([]*RosterEvent, error)
}
