package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/sikhmentors/directory-api/internal/models"
	"github.com/sikhmentors/directory-api/internal/repository"
	"github.com/sikhmentors/directory-api/pkg/circuitbreaker"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/logger"
	"github.com/sikhmentors/directory-api/pkg/mailer"
	"github.com/sikhmentors/directory-api/pkg/metrics"
	"go.uber.org/zap"
)

var contactHTML = template.Must(template.New("contact").Parse(`<p>Hello {{.MentorName}},</p>
<p><strong>{{.Name}}</strong> ({{.Email}}) sent you a message through the mentor directory:</p>
<blockquote style="white-space: pre-wrap">{{.Message}}</blockquote>
<p>Reply to this email to answer {{.Name}} directly.</p>
`))

const contactText = `Hello %s,

%s (%s) sent you a message through the mentor directory:

%s

Reply to this email to answer %s directly.
`

// ContactService relays visitor messages to a mentor's registered address
type ContactService struct {
	mentors repository.MentorStore
	mailer  mailer.Mailer
	from    mailer.Address
	timeout time.Duration
}

// NewContactService creates a contact relay. A nil mailer makes every valid
// message fail with ErrNotConfigured.
func NewContactService(mentors repository.MentorStore, m mailer.Mailer, from mailer.Address, timeout time.Duration) *ContactService {
	return &ContactService{
		mentors: mentors,
		mailer:  m,
		from:    from,
		timeout: timeout,
	}
}

// Send validates msg, resolves the mentor and dispatches the notification
func (s *ContactService) Send(ctx context.Context, mentorID int64, msg *models.ContactMessage) error {
	msg.Normalize()
	if err := msg.Validate(); err != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return err
	}

	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.ContactSubmissions.WithLabelValues("not_found").Inc()
		} else {
			metrics.ContactSubmissions.WithLabelValues("error").Inc()
		}
		return err
	}

	if s.mailer == nil {
		metrics.ContactSubmissions.WithLabelValues("not_configured").Inc()
		return fmt.Errorf("mail transport: %w", apperrors.ErrNotConfigured)
	}

	email, err := buildContactEmail(s.from, mentor, msg)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return apperrors.InternalError(fmt.Sprintf("failed to render contact email: %v", err))
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.mailer.Send(sendCtx, email); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
			metrics.ContactSubmissions.WithLabelValues("timeout").Inc()
			logger.Warn("Mail transport timed out", zap.String("provider", s.mailer.Name()), zap.Int64("mentor_id", mentorID))
			return fmt.Errorf("%s did not answer within %s: %w", s.mailer.Name(), s.timeout, apperrors.ErrDispatchTimeout)
		}
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		logger.Error("Contact dispatch failed",
			zap.String("provider", s.mailer.Name()),
			zap.Int64("mentor_id", mentorID),
			zap.Bool("breaker_open", circuitbreaker.IsRejected(err)),
			zap.Error(err))
		return fmt.Errorf("%w: %v", apperrors.ErrDispatchFailed, err)
	}

	metrics.ContactSubmissions.WithLabelValues("success").Inc()
	logger.Info("Contact message relayed", zap.Int64("mentor_id", mentorID), zap.String("provider", s.mailer.Name()))
	return nil
}

func buildContactEmail(from mailer.Address, mentor *models.Mentor, msg *models.ContactMessage) (mailer.Message, error) {
	var html bytes.Buffer
	err := contactHTML.Execute(&html, struct {
		MentorName, Name, Email, Message string
	}{mentor.Name, msg.Name, msg.Email, msg.Message})
	if err != nil {
		return mailer.Message{}, err
	}

	return mailer.Message{
		From:      from,
		To:        mailer.Address{Name: mentor.Name, Email: mentor.Email},
		ReplyTo:   mailer.Address{Name: msg.Name, Email: msg.Email},
		Subject:   fmt.Sprintf("New message from %s via the mentor directory", msg.Name),
		PlainText: fmt.Sprintf(contactText, mentor.Name, msg.Name, msg.Email, msg.Message, msg.Name),
		HTML:      html.String(),
	}, nil
}
