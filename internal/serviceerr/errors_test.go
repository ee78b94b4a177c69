package serviceerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkcm/report-wallet/internal/serviceerr"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name        string
		err         *serviceerr.Error
		expectedMsg string
	}{
		{
			name:        "Error with description",
			err:         &serviceerr.Error{Err: serviceerr.CodeSubmissionFailed, Description: "relay down"},
			expectedMsg: "submission_failed: relay down",
		},
		{
			name:        "Error without description",
			err:         &serviceerr.Error{Err: serviceerr.CodeInvalidRequest},
			expectedMsg: "invalid_request",
		},
		{
			name:        "Predefined error - ErrSignatureDeclined",
			err:         serviceerr.ErrSignatureDeclined,
			expectedMsg: "signature_declined: transaction signature declined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, tt.err.Error())
		})
	}
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code               serviceerr.Code
		expectedHTTPStatus int
	}{
		{serviceerr.CodeInvalidRequest, http.StatusBadRequest},
		{serviceerr.CodeNoProviderFound, http.StatusNotFound},
		{serviceerr.CodeActivationRejected, http.StatusForbidden},
		{serviceerr.CodeSignatureDeclined, http.StatusForbidden},
		{serviceerr.CodeNoActiveSession, http.StatusPreconditionFailed},
		{serviceerr.CodeSessionInvalidated, http.StatusPreconditionFailed},
		{serviceerr.CodeSubmissionInProgress, http.StatusConflict},
		{serviceerr.CodeActivationFailed, http.StatusBadGateway},
		{serviceerr.CodeSubmissionFailed, http.StatusBadGateway},
		{serviceerr.CodeReadQueryFailed, http.StatusBadGateway},
		{serviceerr.CodeUnknown, http.StatusInternalServerError},
		{serviceerr.Code("unknown_code"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := serviceerr.Error{Err: tt.code}
			assert.Equal(t, tt.expectedHTTPStatus, err.HTTPStatus())
		})
	}
}

func TestKind(t *testing.T) {
	cause := errors.New("relay down")

	t.Run("finds the outermost kind in a wrapped chain", func(t *testing.T) {
		err := fmt.Errorf("%w: %w", serviceerr.ErrSubmissionFailed, fmt.Errorf("%w: %w", serviceerr.ErrSessionInvalidated, cause))

		assert.Same(t, serviceerr.ErrSubmissionFailed, serviceerr.Kind(err))
		assert.ErrorIs(t, err, serviceerr.ErrSessionInvalidated)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("falls back to unknown", func(t *testing.T) {
		assert.Same(t, serviceerr.ErrUnknown, serviceerr.Kind(cause))
	})
}

func TestCause(t *testing.T) {
	cause := errors.New("relay down")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "bare kind", err: serviceerr.ErrNoProviderFound, want: nil},
		{name: "kind with cause", err: fmt.Errorf("%w: %w", serviceerr.ErrSubmissionFailed, cause), want: cause},
		{name: "kind wrapping a kind", err: fmt.Errorf("%w: %w", serviceerr.ErrSubmissionFailed, serviceerr.ErrSessionInvalidated), want: nil},
		{name: "single wrap", err: fmt.Errorf("context: %w", cause), want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serviceerr.Cause(tt.err))
		})
	}
}
