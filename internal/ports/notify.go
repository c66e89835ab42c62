package ports

import "context"

// MailMessage is a rendered transactional mail ready for the provider.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// MailSender submits transactional mail to the configured provider.
// Failures are surfaced to the caller; whether they matter is the caller's
// decision (the lead pipeline treats them as non-fatal).
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}
