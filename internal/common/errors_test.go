package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("Card not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, NewNotFoundError("Card not found"))
	assert.NotErrorIs(t, err, NewNotFoundError("User not found"))
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("Internal server error", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: connection refused", err.Error())
}

func TestCodeAndMessageOf(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"validation", NewValidationError("title is required"), CodeValidation, "title is required"},
		{"conflict", NewConflictError("taken"), CodeConflict, "taken"},
		{"wrapped unauthorized", fmt.Errorf("x: %w", NewUnauthorizedError("Unauthorized", nil)), CodeUnauthorized, "Unauthorized"},
		{"plain error", errors.New("boom"), CodeInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.Equal(t, tt.message, MessageOf(tt.err))
		})
	}
}
