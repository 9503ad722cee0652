package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// ErrUnsupportedMethod is returned for methods other than GET, POST and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// DecodeJSON unmarshals a successful response body into v. A body that does
// not decode is reported as a service error carrying the request ID.
func DecodeJSON(resp *Response, v interface{}) error {
	err := json.Unmarshal(resp.Body, v)
	if err != nil {
		return &payments.Error{
			Kind:           payments.KindServiceError,
			HTTPStatusCode: resp.StatusCode,
			RequestID:      resp.RequestID,
			Message:        "malformed response body",
			Err:            fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	return nil
}
