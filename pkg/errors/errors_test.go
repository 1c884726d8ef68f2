package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("error string includes details", func(t *testing.T) {
		err := NewAppError(CodeBadRequest, "Bad input", "field x")

		assert.Contains(t, err.Error(), "Bad input")
		assert.Contains(t, err.Error(), "field x")
	})

	t.Run("unwrap exposes the cause", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := NewInternalError("failed").WithCause(cause)

		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"empty input", NewEmptyInputError(), http.StatusBadRequest},
		{"invalid cart index", NewInvalidCartIndexError(3), http.StatusBadRequest},
		{"no ingredient selected", NewNoIngredientSelectedError(), http.StatusBadRequest},
		{"no order", NewNoOrderError(), http.StatusNotFound},
		{"session not found", NewSessionNotFoundError("s1"), http.StatusNotFound},
		{"query in flight", NewAppError(CodeQueryInFlight, "busy", ""), http.StatusConflict},
		{"external service", NewExternalServiceError("assistant", fmt.Errorf("down")), http.StatusBadGateway},
		{"malformed response", NewMalformedResponseError(fmt.Errorf("bad json")), http.StatusBadGateway},
		{"internal", NewInternalError("broken"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.StatusCode())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("plain error becomes internal", func(t *testing.T) {
		wrapped := Wrap(fmt.Errorf("db down"), "query failed")

		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.Equal(t, "query failed", wrapped.Message)
	})

	t.Run("app error keeps its code", func(t *testing.T) {
		original := NewEmptyInputError()

		wrapped := Wrap(original, "submit failed")

		assert.Equal(t, CodeEmptyInput, wrapped.Code)
	})

	t.Run("nil returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "nothing"))
	})
}

func TestIs(t *testing.T) {
	assert.True(t, Is(NewNoOrderError(), CodeNoOrder))
	assert.False(t, Is(NewNoOrderError(), CodeEmptyInput))
	assert.False(t, Is(fmt.Errorf("plain"), CodeInternal))
	assert.False(t, Is(nil, CodeInternal))
}

func TestToErrorResponse(t *testing.T) {
	err := NewInvalidCartIndexError(5)

	resp := ToErrorResponse(err, "req-123")

	assert.Equal(t, CodeInvalidCartIndex, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
