package serviceerr

import (
	"errors"
	"net/http"
)

type Code string

const (
	CodeNoProviderFound      Code = "no_provider_found"
	CodeActivationRejected   Code = "activation_rejected"
	CodeActivationFailed     Code = "activation_failed"
	CodeNoActiveSession      Code = "no_active_session"
	CodeSignatureDeclined    Code = "signature_declined"
	CodeSubmissionFailed     Code = "submission_failed"
	CodeReadQueryFailed      Code = "read_query_failed"
	CodeSubmissionInProgress Code = "submission_in_progress"
	CodeSessionInvalidated   Code = "session_invalidated"
	CodeInvalidRequest       Code = "invalid_request"
	CodeUnknown              Code = "unknown"
)

// Error is a typed failure kind. The predefined values are compared with errors.Is,
// external causes are attached by wrapping: fmt.Errorf("%w: %w", ErrX, cause).
type Error struct {
	Err         Code
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Err)
	}
	return string(e.Err) + ": " + e.Description
}

func (e *Error) HTTPStatus() int {
	switch e.Err {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeNoProviderFound:
		return http.StatusNotFound
	case CodeActivationRejected, CodeSignatureDeclined:
		return http.StatusForbidden
	case CodeNoActiveSession, CodeSessionInvalidated:
		return http.StatusPreconditionFailed
	case CodeSubmissionInProgress:
		return http.StatusConflict
	case CodeActivationFailed, CodeSubmissionFailed, CodeReadQueryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrNoProviderFound      = &Error{Err: CodeNoProviderFound, Description: "no wallet provider found"}
	ErrActivationRejected   = &Error{Err: CodeActivationRejected, Description: "connection was rejected"}
	ErrActivationFailed     = &Error{Err: CodeActivationFailed, Description: "wallet activation failed"}
	ErrNoActiveSession      = &Error{Err: CodeNoActiveSession, Description: "no active wallet session"}
	ErrSignatureDeclined    = &Error{Err: CodeSignatureDeclined, Description: "transaction signature declined"}
	ErrSubmissionFailed     = &Error{Err: CodeSubmissionFailed, Description: "failed to submit report"}
	ErrReadQueryFailed      = &Error{Err: CodeReadQueryFailed, Description: "ledger state query failed"}
	ErrSubmissionInProgress = &Error{Err: CodeSubmissionInProgress, Description: "a submission is already in progress"}
	ErrSessionInvalidated   = &Error{Err: CodeSessionInvalidated, Description: "wallet session ended"}
	ErrInvalidRequest       = &Error{Err: CodeInvalidRequest}
	ErrUnknown              = &Error{Err: CodeUnknown, Description: "unknown error"}
)

// Kind returns the first typed error in the chain of err, or ErrUnknown.
func Kind(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrUnknown
}

// Cause returns the error attached to a kind by wrapping, or nil for a bare kind.
func Cause(err error) error {
	u, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}
	for _, e := range u.Unwrap() {
		var kind *Error
		if !errors.As(e, &kind) {
			return e
		}
	}
	return nil
}
