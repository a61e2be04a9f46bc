package errors

import (
	"errors"
	"fmt"
)

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpDuplicateReportError = "duplicate_report"
)

// ErrorResponse is the error body returned by every HTTP endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Kind names a failure class of a usage query. It is the discriminator of
// the query result: a query either returns estimates or fails with one Kind.
type Kind string

const (
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindPermissionDenied    Kind = "permission_denied"
	KindNoDataAvailable     Kind = "no_data_available"
	KindInvalidRange        Kind = "invalid_range"
	KindInvalidArgument     Kind = "invalid_argument"
	KindProviderFailure     Kind = "provider_failure"
	KindNotImplemented      Kind = "not_implemented"
	KindInternal            Kind = "internal_error"
)

// QueryError is a failed usage query.
type QueryError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches any QueryError of the same Kind, so the sentinels below work
// with errors.Is regardless of message or wrapped cause.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnsupportedPlatform = &QueryError{Kind: KindUnsupportedPlatform, Message: "platform does not provide usage statistics"}
	ErrPermissionDenied    = &QueryError{Kind: KindPermissionDenied, Message: "usage statistics access not granted"}
	ErrNoDataAvailable     = &QueryError{Kind: KindNoDataAvailable, Message: "no usage data available"}
	ErrInvalidRange        = &QueryError{Kind: KindInvalidRange, Message: "start time is after end time"}
)

// Newf builds a QueryError of the given kind.
func Newf(kind Kind, format string, args ...interface{}) *QueryError {
	return &QueryError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a QueryError of the given kind around a cause.
func Wrap(kind Kind, err error, message string) *QueryError {
	return &QueryError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind carried by err, or KindInternal when err is not a QueryError.
func KindOf(err error) Kind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindInternal
}
