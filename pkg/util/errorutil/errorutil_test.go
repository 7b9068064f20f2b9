package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain", NewNotFound("engineer", nil), CodeNotFound, http.StatusNotFound},
		{"wrapped domain", fmt.Errorf("ctx: %w", NewValidationError("bad", nil)), CodeValidation, http.StatusBadRequest},
		{"fiber bad request", fiber.NewError(http.StatusBadRequest, "invalid payload"), CodeValidation, http.StatusBadRequest},
		{"fiber method", fiber.ErrMethodNotAllowed, "Method Not Allowed", http.StatusMethodNotAllowed},
		{"plain", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestPatternDecodeError(t *testing.T) {
	cause := errors.New("not a zip")
	err := NewPatternDecodeError(cause)
	assert.ErrorIs(t, err, cause)
	de := ToDomainError(err)
	assert.Equal(t, CodePatternDecodeFailed, de.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, de.HTTPStatus)
	assert.Equal(t, "could not read pattern file: not a zip", err.Error())
}
