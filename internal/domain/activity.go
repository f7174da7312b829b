package domain

import (
	"context"
	"time"
)

// Activity is an extracurricular offering and its roster.
// swagger:model Activity
type Activity struct {
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Clone returns a deep copy; the participants slice is never shared.
func (a *Activity) Clone() *Activity {
	participants := make([]string, len(a.Participants))
	copy(participants, a.Participants)
	return &Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// IsFull reports whether the roster has reached capacity.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// ActivityRepository holds every activity for the life of the process.
// Implementations must run each Signup and Unregister check-and-mutate atomically
// and return its commit time. Commit times are strictly increasing in commit
// order at microsecond precision, so they order the audit log.
type ActivityRepository interface {
	List(ctx context.Context) (map[string]*Activity, error)
	// Get returns a copy of the named activity or ErrNotFound.
	Get(ctx context.Context, activityName string) (*Activity, error)
	// Signup appends email to the roster. Returns ErrNotFound, ErrAlreadySignedUp or ErrActivityFull.
	Signup(ctx context.Context, activityName, email string) (time.Time, error)
	// Unregister removes email from the roster. Returns ErrNotFound or ErrNotSignedUp.
	Unregister(ctx context.Context, activityName, email string) (time.Time, error)
}

// ActivityService defines the roster operations exposed over HTTP.
type ActivityService interface {
	ListActivities(ctx context.Context) (map[string]*Activity, error)
	// Signup registers email for the activity and returns a confirmation message.
	Signup(ctx context.Context, activityName, email string) (string, error)
	// Unregister removes email from the activity and returns a confirmation message.
	Unregister(ctx context.Context, activityName, email string) (string, error)
	// History returns the audit trail of roster changes for the activity.
	History(ctx context.Context, activityName string) ([]*RosterEvent, error)
}
