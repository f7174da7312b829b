package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mergingtonactivities/internal/domain"
)

// ErrEmailBacklogFull is returned when every send slot is busy; the email is dropped.
var ErrEmailBacklogFull = errors.New("email backlog full")

// AsyncEmailService sends roster emails in the background so that mail
// provider latency stays off the request path. At most maxInFlight sends run at
// once. Each send gets a context detached from the request, bounded by timeout.
type AsyncEmailService struct {
	next    domain.EmailService
	logger  *slog.Logger
	timeout time.Duration
	slots   chan struct{}
	wg      sync.WaitGroup
}

var _ domain.EmailService = (*AsyncEmailService)(nil)

// NewAsyncEmailService wraps next. maxInFlight below 1 is treated as 1.
func NewAsyncEmailService(next domain.EmailService, logger *slog.Logger, maxInFlight int, timeout time.Duration) *AsyncEmailService {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &AsyncEmailService{
		next:    next,
		logger:  logger,
		timeout: timeout,
		slots:   make(chan struct{}, maxInFlight),
	}
}

func (a *AsyncEmailService) SendSignupConfirmation(ctx context.Context, data *domain.RosterEmailData) error {
	return a.dispatch(ctx, signupConfirmationTemplate, func(ctx context.Context) error {
		return a.next.SendSignupConfirmation(ctx, data)
	})
}

func (a *AsyncEmailService) SendUnregisterConfirmation(ctx context.Context, data *domain.RosterEmailData) error {
	return a.dispatch(ctx, unregisterConfirmationTemplate, func(ctx context.Context) error {
		return a.next.SendUnregisterConfirmation(ctx, data)
	})
}

func (a *AsyncEmailService) dispatch(ctx context.Context, kind string, send func(context.Context) error) error {
	select {
	case a.slots <- struct{}{}:
	default:
		return ErrEmailBacklogFull
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() { <-a.slots }()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		if err := send(sendCtx); err != nil {
			a.logger.WarnContext(sendCtx, "failed to send roster email", "template", kind, "err", err)
		}
	}()
	return nil
}

// Close waits for in-flight sends to finish or for ctx to be done.
// Call it after the HTTP server has stopped accepting requests.
func (a *AsyncEmailService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
