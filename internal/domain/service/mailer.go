package service

import "context"

// MailMessage is a plain-text email.
type MailMessage struct {
	To      string
	Subject string
	Text    string
}

// Mailer delivers outbound email.
type Mailer interface {
	// Send delivers msg or returns the provider error.
	Send(ctx context.Context, msg *MailMessage) error
}
