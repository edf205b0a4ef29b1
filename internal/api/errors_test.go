package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/service/auth"
	"github.com/servicereview/service-review-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "service not found", err: store.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "application not found", err: store.ErrApplicationNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("op: %w", store.ErrServiceNotFound), want: http.StatusNotFound},
		{name: "invalid id", err: store.ErrInvalidID, want: http.StatusBadRequest},
		{name: "missing service id", err: domain.ErrMissingServiceID, want: http.StatusBadRequest},
		{name: "invalid status", err: domain.ErrInvalidStatus, want: http.StatusBadRequest},
		{name: "invalid transition", err: domain.ErrInvalidTransition, want: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "unauthorized", err: auth.ErrExpiredToken, want: CodeUnauthorized},
		{name: "not found", err: store.ErrApplicationNotFound, want: CodeNotFound},
		{name: "validation", err: domain.ErrInvalidStatus, want: CodeValidationFailed},
		{name: "internal", err: errors.New("boom"), want: CodeInternal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: "An unexpected error occurred"},
		{name: "service not found", err: store.ErrServiceNotFound, want: "Service not found"},
		{name: "application not found", err: store.ErrApplicationNotFound, want: "Application not found"},
		{name: "invalid id", err: store.ErrInvalidID, want: "Invalid id format"},
		{name: "expired session", err: auth.ErrExpiredToken, want: "Session expired"},
		{name: "wrapped transition", err: fmt.Errorf("%w: approved -> pending", domain.ErrInvalidTransition), want: "Invalid status transition"},
		{name: "internal detail hidden", err: errors.New("dial tcp: connection refused"), want: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
