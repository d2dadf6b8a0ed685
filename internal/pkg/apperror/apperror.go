package apperror

import "net/http"

// Kind is the machine-readable error category returned to API clients.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidEstimate   Kind = "invalid_estimate"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindUnauthorized      Kind = "unauthorized"
	KindTooManyAttempts   Kind = "too_many_attempts"
	KindInternal          Kind = "internal"
)

// Kind sentinels. errors.Is(err, ErrNotFound) is true for any AppError of kind not_found.
var (
	ErrInvalidInput      = kindSentinel(http.StatusBadRequest, KindInvalidInput)
	ErrInvalidEstimate   = kindSentinel(http.StatusUnprocessableEntity, KindInvalidEstimate)
	ErrNotFound          = kindSentinel(http.StatusNotFound, KindNotFound)
	ErrInvalidTransition = kindSentinel(http.StatusConflict, KindInvalidTransition)
	ErrConflict          = kindSentinel(http.StatusConflict, KindConflict)
	ErrUnauthorized      = kindSentinel(http.StatusUnauthorized, KindUnauthorized)
	ErrTooManyAttempts   = kindSentinel(http.StatusTooManyRequests, KindTooManyAttempts)
)

// AppError is a custom error type that includes an HTTP status code and a machine-readable kind.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Machine-readable category
	Message string // User-facing error message
	Field   string // Offending input field, if any
	Err     error  // The underlying error, if any (not exposed to user)

	generic bool
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind sentinel of e.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || !t.generic {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a new AppError with a status code, kind and message.
func New(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Invalid reports a malformed or missing input field.
func Invalid(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: message,
		Field:   field,
	}
}

func kindSentinel(code int, kind Kind) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: string(kind),
		generic: true,
	}
}
