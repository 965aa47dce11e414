// Package mail defines the outgoing email contract. Actual delivery is not
// part of this service -- registration only needs a sender it can hand a
// verification message to, and a failure to send must never fail the
// operation that triggered it.
package mail

import (
	"context"
	"log/slog"
)

// Sender sends email on behalf of the application. Implementations must be
// safe for concurrent use.
type Sender interface {
	SendMail(ctx context.Context, to []string, subject, body string) error
}

// LogSender is the delivery stub used until a real provider is wired in.
// It logs the message instead of sending it and never fails.
type LogSender struct{}

// NewLogSender creates the logging delivery stub.
func NewLogSender() LogSender {
	return LogSender{}
}

// SendMail logs the message and reports success.
func (LogSender) SendMail(ctx context.Context, to []string, subject, body string) error {
	slog.Info("mail delivery stubbed",
		slog.Any("to", to),
		slog.String("subject", subject),
	)
	return nil
}
