package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeRateLimit     Type = "RATE_LIMIT"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// defaultStatus is used when an error is built without an explicit HTTP status
var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeUnauthorized:  http.StatusUnauthorized,
	TypeAuthorization: http.StatusForbidden,
	TypeRateLimit:     http.StatusTooManyRequests,
	TypeExternal:      http.StatusBadGateway,
	TypeInternal:      http.StatusInternalServerError,
}

// Error is the application error carried across layers
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New creates an error that is not attached to any registry
func New(code string, typ Type, message string) *Error {
	return &Error{
		Code:       code,
		Type:       typ,
		Message:    message,
		HTTPStatus: StatusFor(typ),
	}
}

// Wrap turns an arbitrary error into an *Error.
// Errors that already are *Error are returned as they are so their type survives.
func Wrap(err error, message string, typ Type) *Error {
	if err == nil {
		return nil
	}

	var xe *Error
	if errors.As(err, &xe) {
		return xe
	}

	return &Error{
		Code:       string(typ) + "_ERROR",
		Type:       typ,
		Message:    message,
		HTTPStatus: StatusFor(typ),
		Cause:      err,
	}
}

// StatusFor returns the default HTTP status for an error type
func StatusFor(typ Type) int {
	if status, ok := defaultStatus[typ]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so that errors.Is works against registry helpers
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a single detail entry
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given details
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithMessage replaces the registered message with a more specific one
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// WithCause attaches the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// IsInternal reports whether the error must be hidden from clients
func (e *Error) IsInternal() bool {
	return e.Type == TypeInternal || e.Type == TypeExternal
}

// HTTPResponse is the JSON body returned to clients
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse renders the error for clients; internal errors keep a generic message
func (e *Error) ToHTTPResponse() HTTPResponse {
	if e.IsInternal() {
		return HTTPResponse{
			Error:   http.StatusText(e.HTTPStatus),
			Type:    e.Type,
			Code:    e.Code,
			Message: e.Message,
		}
	}

	return HTTPResponse{
		Error:   http.StatusText(e.HTTPStatus),
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, typ Type) bool {
	var xe *Error
	if errors.As(err, &xe) {
		return xe.Type == typ
	}
	return false
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var xe *Error
	ok := errors.As(err, &xe)
	return xe, ok
}
