package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RosterEmailData holds data for the signup and unregister confirmation emails.
type RosterEmailData struct {
	Email        string
	ActivityName string
}

// EmailService sends roster confirmation emails.
type EmailService interface {
	SendSignupConfirmation(ctx context.Context, data *RosterEmailData) error
	SendUnregisterConfirmation(ctx context.Context, data *RosterEmailData) error
}
