package memory

import (
	"context"
	"sync"
	"time"

	"mergingtonactivities/internal/domain"
)

// activityRepository is the process-lifetime activity registry.
// A single lock covers every activity so the existence, duplicate and capacity
// checks run in the same critical section as the roster mutation.
type activityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
	now        func() time.Time
	lastCommit time.Time
}

// Option configures an activity repository.
type Option func(*activityRepository)

// WithClock overrides the time source for commit times.
func WithClock(now func() time.Time) Option {
	return func(r *activityRepository) { r.now = now }
}

// NewActivityRepository returns a registry seeded with a private copy of activities.
func NewActivityRepository(activities map[string]*domain.Activity, opts ...Option) domain.ActivityRepository {
	owned := make(map[string]*domain.Activity, len(activities))
	for name, a := range activities {
		owned[name] = a.Clone()
	}
	r := &activityRepository{activities: owned, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// commitTime returns the UTC time of the change being committed, truncated to
// the microsecond precision of the audit store and bumped past the previous
// commit if the clock stalled or went backwards. Callers hold r.mu.
func (r *activityRepository) commitTime() time.Time {
	at := r.now().UTC().Truncate(time.Microsecond)
	if !at.After(r.lastCommit) {
		at = r.lastCommit.Add(time.Microsecond)
	}
	r.lastCommit = at
	return at
}

func (r *activityRepository) List(ctx context.Context) (map[string]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*domain.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

func (r *activityRepository) Get(ctx context.Context, activityName string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[activityName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *activityRepository) Signup(ctx context.Context, activityName, email string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityName]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	if a.HasParticipant(email) {
		return time.Time{}, domain.ErrAlreadySignedUp
	}
	if a.IsFull() {
		return time.Time{}, domain.ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return r.commitTime(), nil
}

func (r *activityRepository) Unregister(ctx context.Context, activityName, email string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[activityName]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return r.commitTime(), nil
		}
	}
	return time.Time{}, domain.ErrNotSignedUp
}
