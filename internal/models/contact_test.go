package models

import (
	"testing"

	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestContactMessage_Validate(t *testing.T) {
	m := ContactMessage{Name: "Visitor", Email: "v@example.org", Message: " "}
	err := m.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, []apperrors.FieldError{{Field: "message", Message: "This field is required"}}, apperrors.FieldsOf(err))

	m.Message = "Could we talk about co-op placements?"
	assert.NoError(t, m.Validate())
}

func TestContactMessage_Normalize(t *testing.T) {
	m := ContactMessage{Name: " Visitor ", Email: " v@example.org\n", Message: "\thi "}
	m.Normalize()
	assert.Equal(t, ContactMessage{Name: "Visitor", Email: "v@example.org", Message: "hi"}, m)
}
