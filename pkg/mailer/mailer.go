// Package mailer delivers transactional email for the contact relay.
package mailer

import (
	"context"
)

// Address is a display name plus email address
type Address struct {
	Name  string
	Email string
}

// Message is a single-recipient email
type Message struct {
	From      Address
	To        Address
	ReplyTo   Address
	Subject   string
	PlainText string
	HTML      string
}

// Mailer sends one message and returns once the transport accepted it
type Mailer interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}
