package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mergingtonactivities/internal/domain"
)

// Operation and outcome labels reported to a RosterRecorder.
const (
	OpSignup     = "signup"
	OpUnregister = "unregister"

	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeAlreadySignedUp = "already_signed_up"
	OutcomeFull            = "full"
	OutcomeNotSignedUp     = "not_signed_up"
	OutcomeInvalid         = "invalid"
	OutcomeError           = "error"
)

// RosterRecorder receives the outcome of every signup and unregister attempt.
type RosterRecorder interface {
	RecordRosterChange(operation, activity, outcome string)
}

type activityService struct {
	repo     domain.ActivityRepository
	audit    domain.RosterEventRepository
	emails   domain.EmailService
	recorder RosterRecorder
	logger   *slog.Logger
}

// ActivityServiceOption configures optional collaborators of the activity service.
type ActivityServiceOption func(*activityService)

// WithAuditLog records each successful roster change in repo.
func WithAuditLog(repo domain.RosterEventRepository) ActivityServiceOption {
	return func(s *activityService) { s.audit = repo }
}

// WithEmails sends confirmation emails after each successful roster change.
func WithEmails(emails domain.EmailService) ActivityServiceOption {
	return func(s *activityService) { s.emails = emails }
}

// WithRecorder reports every roster attempt to recorder.
func WithRecorder(recorder RosterRecorder) ActivityServiceOption {
	return func(s *activityService) { s.recorder = recorder }
}

// NewActivityService creates an ActivityService over the activity registry.
func NewActivityService(repo domain.ActivityRepository, logger *slog.Logger, opts ...ActivityServiceOption) domain.ActivityService {
	s := &activityService{
		repo:   repo,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *activityService) ListActivities(ctx context.Context) (map[string]*domain.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) Signup(ctx context.Context, activityName, email string) (string, error) {
	if err := s.checkEmail(ctx, OpSignup, activityName, email); err != nil {
		return "", err
	}
	committedAt, err := s.repo.Signup(ctx, activityName, email)
	if err != nil {
		s.record(OpSignup, activityName, outcomeOf(err))
		if isRosterError(err) {
			return "", err
		}
		return "", fmt.Errorf("signup: %w", err)
	}
	s.record(OpSignup, activityName, OutcomeSuccess)
	s.afterChange(ctx, activityName, email, domain.RosterActionSignup, committedAt)
	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

func (s *activityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	if err := s.checkEmail(ctx, OpUnregister, activityName, email); err != nil {
		return "", err
	}
	committedAt, err := s.repo.Unregister(ctx, activityName, email)
	if err != nil {
		s.record(OpUnregister, activityName, outcomeOf(err))
		if isRosterError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister: %w", err)
	}
	s.record(OpUnregister, activityName, OutcomeSuccess)
	s.afterChange(ctx, activityName, email, domain.RosterActionUnregister, committedAt)
	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

func (s *activityService) History(ctx context.Context, activityName string) ([]*domain.RosterEvent, error) {
	if _, err := s.repo.Get(ctx, activityName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	if s.audit == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	events, err := s.audit.ListByActivity(ctx, activityName)
	if err != nil {
		return nil, fmt.Errorf("list roster events: %w", err)
	}
	if events == nil {
		events = []*domain.RosterEvent{}
	}
	return events, nil
}

// checkEmail rejects a blank email. An unknown activity is still reported as
// not found so that the activity check always comes first.
func (s *activityService) checkEmail(ctx context.Context, operation, activityName, email string) error {
	if strings.TrimSpace(email) != "" {
		return nil
	}
	if _, err := s.repo.Get(ctx, activityName); err != nil {
		s.record(operation, activityName, outcomeOf(err))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}
	s.record(operation, activityName, OutcomeInvalid)
	return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
}

// afterChange runs the side effects of a committed roster change. The audit
// record carries the registry's commit time so history follows commit order.
// Failures are logged only: the roster change has already happened.
func (s *activityService) afterChange(ctx context.Context, activityName, email string, action domain.RosterAction, committedAt time.Time) {
	if s.audit != nil {
		ev := domain.NewRosterEvent(activityName, email, action, committedAt)
		if err := s.audit.Create(ctx, ev); err != nil {
			s.logger.WarnContext(ctx, "failed to record roster event", "activity", activityName, "action", action, "err", err)
		}
	}
	if s.emails != nil {
		data := &domain.RosterEmailData{Email: email, ActivityName: activityName}
		var err error
		if action == domain.RosterActionSignup {
			err = s.emails.SendSignupConfirmation(ctx, data)
		} else {
			err = s.emails.SendUnregisterConfirmation(ctx, data)
		}
		if err != nil {
			s.logger.WarnContext(ctx, "failed to send roster email", "activity", activityName, "action", action, "err", err)
		}
	}
}

func (s *activityService) record(operation, activity, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordRosterChange(operation, activity, outcome)
	}
}

func isRosterError(err error) bool {
	return domain.IsNotFound(err) || domain.IsConflict(err)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrNotSignedUp):
		return OutcomeNotSignedUp
	case errors.Is(err, domain.ErrAlreadySignedUp):
		return OutcomeAlreadySignedUp
	case errors.Is(err, domain.ErrActivityFull):
		return OutcomeFull
	default:
		return OutcomeError
	}
}
