package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates a missing or invalid credential. All token
// verification failures collapse to this one kind so verification internals
// never leak to clients.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates the caller is authenticated but lacks the required
// scope role.
var ErrForbidden = errors.New("forbidden")

// ErrorType values surfaced to clients in the response envelope.
const (
	TypeUnauthenticated = "UnauthenticatedError"
	TypeForbidden       = "ForbiddenError"
	TypeNotFound        = "NotFoundError"
	TypeBadRequest      = "BadRequestError"
	TypeConflict        = "ConflictError"
	TypeInternal        = "InternalServerError"
)

// AppError is an error carrying an HTTP status code and a client-safe
// error type and message.
type AppError struct {
	Code      int    `json:"-"`
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
	Err       error  `json:"-"` // Wrapped cause, never serialized
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match AppErrors against the package sentinels, so
// services can wrap repository sentinels without handlers caring which
// representation they got.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrUnauthenticated:
		return e.Code == http.StatusUnauthorized
	case ErrValidation:
		return e.Code == http.StatusBadRequest
	case ErrDuplicate:
		return e.Code == http.StatusConflict
	}
	return false
}

// NewAppError creates a generic AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, ErrorType: typeForCode(code), Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError wrapping the given cause.
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Code: http.StatusNotFound, ErrorType: TypeNotFound, Message: message, Err: err}
}

// NewBadRequestError creates a 400 AppError wrapping the given cause.
func NewBadRequestError(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, ErrorType: TypeBadRequest, Message: message, Err: err}
}

// NewValidationFailedError creates a 400 AppError for payloads that failed
// validation.
func NewValidationFailedError(message string) *AppError {
	return NewBadRequestError(message, ErrValidation)
}

// NewUnauthenticatedError creates a 401 AppError wrapping the given cause.
func NewUnauthenticatedError(message string, err error) *AppError {
	return &AppError{Code: http.StatusUnauthorized, ErrorType: TypeUnauthenticated, Message: message, Err: err}
}

// NewForbiddenError creates a 403 AppError wrapping the given cause.
func NewForbiddenError(message string, err error) *AppError {
	return &AppError{Code: http.StatusForbidden, ErrorType: TypeForbidden, Message: message, Err: err}
}

// NewConflictError creates a 409 AppError.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, ErrorType: TypeConflict, Message: message, Err: ErrDuplicate}
}

// NewInternalServerError creates a 500 AppError wrapping the given cause.
func NewInternalServerError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, ErrorType: TypeInternal, Message: message, Err: err}
}

func typeForCode(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return TypeUnauthenticated
	case http.StatusForbidden:
		return TypeForbidden
	case http.StatusNotFound:
		return TypeNotFound
	case http.StatusBadRequest:
		return TypeBadRequest
	case http.StatusConflict:
		return TypeConflict
	}
	return TypeInternal
}
