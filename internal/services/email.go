package services

import (
	"context"
	"fmt"
	"log/slog"

	"mergingtonactivities/internal/domain"
)

const (
	signupConfirmationTemplate     = "signup_confirmation"
	unregisterConfirmationTemplate = "unregister_confirmation"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSignupConfirmation sends the "signup_confirmation" template to the student.
func (s *emailService) SendSignupConfirmation(ctx context.Context, data *domain.RosterEmailData) error {
	return s.send(ctx, signupConfirmationTemplate, data)
}

// SendUnregisterConfirmation sends the "unregister_confirmation" template to the student.
func (s *emailService) SendUnregisterConfirmation(ctx context.Context, data *domain.RosterEmailData) error {
	return s.send(ctx, unregisterConfirmationTemplate, data)
}

func (s *emailService) send(ctx context.Context, templateName string, data *domain.RosterEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.DebugContext(ctx, "roster email sent", "template", templateName, "activity", data.ActivityName)
	return nil
}
