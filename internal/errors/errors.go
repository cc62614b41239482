package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when login email or password is wrong.
	// Deliberately generic so the response never reveals which field failed.
	ErrInvalidCredentials = errors.New("Invalid credentials.")
	// ErrUnauthenticated is returned when a bearer token is missing, invalid or revoked.
	ErrUnauthenticated = errors.New("Unauthenticated.")
)

// ValidationError carries per-field messages for a 422 response.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "Validation failed." }

// NewValidationError builds a ValidationError from a field→messages map.
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldError builds a ValidationError for a single field.
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// NotFoundError maps to 404 with a resource-specific message.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFound creates a NotFoundError.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ConflictError maps to 409 (e.g. a second Student bound to one User).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflict creates a ConflictError.
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// BadRequestError maps to 400 (e.g. a missing required query parameter).
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// NewBadRequest creates a BadRequestError.
func NewBadRequest(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

// UnprocessableError maps to 422 with a single message instead of a field map.
// Used for the schedule date-range recheck, which reports one dedicated message.
type UnprocessableError struct {
	Message string
}

func (e *UnprocessableError) Error() string { return e.Message }

// NewUnprocessable creates an UnprocessableError.
func NewUnprocessable(message string) *UnprocessableError {
	return &UnprocessableError{Message: message}
}

// HTTPError is a resolved HTTP status plus JSON payload.
type HTTPError struct {
	Status  int
	Payload map[string]interface{}
}

// MapToHTTP converts a domain error to its HTTP response. internalMessage is
// used for the 500 fallback ("Registration failed.", "Failed to fetch courses.", ...).
func MapToHTTP(err error, internalMessage string) *HTTPError {
	var (
		ve *ValidationError
		nf *NotFoundError
		cf *ConflictError
		br *BadRequestError
		up *UnprocessableError
	)
	switch {
	case errors.As(err, &ve):
		return &HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Payload: map[string]interface{}{"message": "Validation failed.", "errors": ve.Fields},
		}
	case errors.As(err, &up):
		return &HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Payload: map[string]interface{}{"message": up.Message},
		}
	case errors.As(err, &nf):
		return &HTTPError{
			Status:  http.StatusNotFound,
			Payload: map[string]interface{}{"message": nf.Message},
		}
	case errors.As(err, &cf):
		return &HTTPError{
			Status:  http.StatusConflict,
			Payload: map[string]interface{}{"message": cf.Message},
		}
	case errors.As(err, &br):
		return &HTTPError{
			Status:  http.StatusBadRequest,
			Payload: map[string]interface{}{"message": br.Message},
		}
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return &HTTPError{
			Status:  http.StatusUnauthorized,
			Payload: map[string]interface{}{"message": err.Error()},
		}
	default:
		return &HTTPError{
			Status:  http.StatusInternalServerError,
			Payload: map[string]interface{}{"message": internalMessage, "error": err.Error()},
		}
	}
}
