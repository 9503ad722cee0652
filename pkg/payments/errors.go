package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies every failure a caller can observe.
type ErrorKind string

// Error kinds.
const (
	// KindInvalidIdentifier means an operation needing an ID got none. It is
	// raised before any request is sent.
	KindInvalidIdentifier ErrorKind = "invalid_identifier"
	// KindClientError is a 4xx response.
	KindClientError ErrorKind = "client_error"
	// KindServiceError is a 5xx response.
	KindServiceError ErrorKind = "service_error"
	// KindConnectivityError means no HTTP response was received.
	KindConnectivityError ErrorKind = "connectivity_error"
)

// ErrorType is the "type" field of an API error body.
type ErrorType string

// API error types.
const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeIdempotency    ErrorType = "idempotency_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
)

// Error is returned by every operation that fails. Kind is always set; the
// remaining fields are filled from the response when one was received.
type Error struct {
	Kind           ErrorKind `json:"-" yaml:"kind"`
	HTTPStatusCode int       `json:"-" yaml:"http_status_code,omitempty"`
	RequestID      string    `json:"-" yaml:"request_id,omitempty"`

	Type        ErrorType `json:"type"                   yaml:"type,omitempty"`
	Code        string    `json:"code,omitempty"         yaml:"code,omitempty"`
	DeclineCode string    `json:"decline_code,omitempty" yaml:"decline_code,omitempty"`
	Message     string    `json:"message,omitempty"      yaml:"message,omitempty"`
	Param       string    `json:"param,omitempty"        yaml:"param,omitempty"`
	DocURL      string    `json:"doc_url,omitempty"      yaml:"doc_url,omitempty"`

	// Err is the underlying cause, if any.
	Err error `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	var builder strings.Builder

	builder.WriteString(string(e.Kind))

	if e.HTTPStatusCode != 0 {
		fmt.Fprintf(&builder, " (status %d)", e.HTTPStatusCode)
	}

	if e.Type != "" {
		fmt.Fprintf(&builder, " %s", e.Type)
	}

	if e.Code != "" {
		fmt.Fprintf(&builder, " [%s]", e.Code)
	}

	switch {
	case e.Message != "":
		fmt.Fprintf(&builder, ": %s", e.Message)
	case e.Err != nil:
		fmt.Fprintf(&builder, ": %v", e.Err)
	}

	if e.RequestID != "" {
		fmt.Fprintf(&builder, " (request %s)", e.RequestID)
	}

	return builder.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel errors for each kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidIdentifier:
		return e.Kind == KindInvalidIdentifier
	case ErrClientError:
		return e.Kind == KindClientError
	case ErrServiceError:
		return e.Kind == KindServiceError
	case ErrConnectivity:
		return e.Kind == KindConnectivityError
	default:
		return false
	}
}

// errorEnvelope is the JSON body of a non-2xx response.
type errorEnvelope struct {
	Err *Error `json:"error"`
}

// Sentinel errors matched by errors.Is against *Error.
var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrClientError       = errors.New("client error")
	ErrServiceError      = errors.New("service error")
	ErrConnectivity      = errors.New("connectivity error")
)

// Common static errors that can be wrapped with context.
var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrNoMoreItems        = errors.New("no more items")
	ErrConfigRequired     = errors.New("config is required")
	ErrCredentialsMissing = errors.New("an API key or OAuth2 client credentials are required")
	ErrUnknownOperation   = errors.New("unknown batch operation")
	ErrInvalidBatchParams = errors.New("invalid batch params")
)

// KindForStatus maps an HTTP status to an error kind. Statuses outside
// 4xx/5xx are treated as service errors since they are not success.
func KindForStatus(status int) ErrorKind {
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return KindClientError
	}

	return KindServiceError
}

// ParseErrorResponse builds an *Error from a non-2xx response. A body that
// is not a valid error envelope still yields an error of the right kind,
// with the status text as message.
func ParseErrorResponse(status int, requestID string, body []byte) *Error {
	apiErr := &Error{}

	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err == nil && envelope.Err != nil {
		apiErr = envelope.Err
	} else {
		apiErr.Message = http.StatusText(status)
		if err != nil {
			apiErr.Err = fmt.Errorf("failed to unmarshal error response: %w", err)
		}
	}

	apiErr.Kind = KindForStatus(status)
	apiErr.HTTPStatusCode = status
	apiErr.RequestID = requestID

	return apiErr
}

// NewInvalidIdentifierError is returned when an operation that targets an
// existing resource is called without an identifier.
func NewInvalidIdentifierError(operation string) *Error {
	return &Error{
		Kind:    KindInvalidIdentifier,
		Message: fmt.Sprintf("%s requires a non-empty payment intent ID", operation),
	}
}

// NewConnectivityError wraps a transport failure.
func NewConnectivityError(err error) *Error {
	return &Error{
		Kind: KindConnectivityError,
		Err:  err,
	}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	return ""
}

// IsInvalidIdentifier reports whether err is an invalid identifier error.
func IsInvalidIdentifier(err error) bool {
	return KindOf(err) == KindInvalidIdentifier
}

// IsClientError reports whether err is a 4xx error.
func IsClientError(err error) bool {
	return KindOf(err) == KindClientError
}

// IsServiceError reports whether err is a 5xx error.
func IsServiceError(err error) bool {
	return KindOf(err) == KindServiceError
}

// IsConnectivityError reports whether err is a transport failure.
func IsConnectivityError(err error) bool {
	return KindOf(err) == KindConnectivityError
}

// IsCardError reports whether err is a declined card.
func IsCardError(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Type == ErrorTypeCard
	}

	return false
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusNotFound
	}

	return false
}
