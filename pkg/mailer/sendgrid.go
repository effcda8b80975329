package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sikhmentors/directory-api/pkg/circuitbreaker"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const providerSendGrid = "sendgrid"

// SendGridMailer sends through the SendGrid v3 mail API behind a circuit breaker
type SendGridMailer struct {
	apiKey  string
	baseURL string
	breaker *gobreaker.CircuitBreaker
}

// NewSendGridMailer creates a mailer for apiKey. baseURL overrides the API
// endpoint and may be empty.
func NewSendGridMailer(apiKey, baseURL string) *SendGridMailer {
	cfg := circuitbreaker.DefaultConfig("sendgrid")
	cfg.IsSuccessful = func(err error) bool {
		var rejected *RejectedError
		return err == nil || errors.As(err, &rejected)
	}
	return &SendGridMailer{
		apiKey:  apiKey,
		baseURL: baseURL,
		breaker: circuitbreaker.New(cfg),
	}
}

// RejectedError is a 4xx reply: SendGrid is up but refused this message.
// It does not count against the breaker.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("sendgrid rejected the message with status %d: %s", e.StatusCode, e.Body)
}

// Name implements Mailer
func (m *SendGridMailer) Name() string { return providerSendGrid }

// Send implements Mailer. Non-2xx responses are errors.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	start := time.Now()

	email := mail.NewSingleEmail(
		mail.NewEmail(msg.From.Name, msg.From.Email),
		msg.Subject,
		mail.NewEmail(msg.To.Name, msg.To.Email),
		msg.PlainText,
		msg.HTML,
	)
	if msg.ReplyTo.Email != "" {
		email.SetReplyTo(mail.NewEmail(msg.ReplyTo.Name, msg.ReplyTo.Email))
	}

	status, err := circuitbreaker.Execute(m.breaker, func() (int, error) {
		// a fresh client per call; the SDK client keeps the body on the struct
		client := sendgrid.NewSendClient(m.apiKey)
		if m.baseURL != "" {
			client.Request.BaseURL = m.baseURL + "/v3/mail/send"
		}
		resp, err := client.SendWithContext(ctx, email)
		if err != nil {
			return 0, err
		}
		switch {
		case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
			return resp.StatusCode, &RejectedError{StatusCode: resp.StatusCode, Body: resp.Body}
		case resp.StatusCode >= 300:
			return resp.StatusCode, fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
		}
		return resp.StatusCode, nil
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.MailRequestDuration.WithLabelValues(providerSendGrid, "error").Observe(duration)
		metrics.MailRequestTotal.WithLabelValues(providerSendGrid, "error").Inc()
		logger.LogAPICall(providerSendGrid, "send", "error", duration, zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	metrics.MailRequestDuration.WithLabelValues(providerSendGrid, "success").Observe(duration)
	metrics.MailRequestTotal.WithLabelValues(providerSendGrid, "success").Inc()
	logger.LogAPICall(providerSendGrid, "send", "success", duration, zap.Int("status_code", status))
	return nil
}
