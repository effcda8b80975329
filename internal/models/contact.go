package models

import (
	"strings"

	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
)

// ContactMessage is a visitor's message to a mentor
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from every field
func (m *ContactMessage) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
}

// Validate requires all three fields
func (m *ContactMessage) Validate() error {
	var fields []apperrors.FieldError
	for _, f := range []struct{ name, value string }{
		{"name", m.Name},
		{"email", m.Email},
		{"message", m.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			fields = append(fields, apperrors.FieldError{Field: f.name, Message: "This field is required"})
		}
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}
	return nil
}

// MessageResponse is the generic acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}
