package mailer

import (
	"context"

	"github.com/sikhmentors/directory-api/pkg/logger"
	"go.uber.org/zap"
)

// LogMailer writes messages to the application log instead of sending them.
// Used in development when no SendGrid key is configured.
type LogMailer struct{}

// Name implements Mailer
func (LogMailer) Name() string { return "log" }

// Send implements Mailer
func (LogMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("Email not sent (log mailer)",
		zap.String("to", msg.To.Email),
		zap.String("reply_to", msg.ReplyTo.Email),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.PlainText),
	)
	return nil
}
