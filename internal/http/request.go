package http

import (
	"github.com/fivetwenty-io/payments-client/internal/form"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// Request describes one API call. It is a value: every With* method returns
// a modified copy and leaves the receiver untouched, so a partially built
// request can be shared and extended safely.
type Request struct {
	Method  string
	Path    string
	Params  *form.Values
	Options payments.RequestOptions
	Headers map[string]string
}

// NewRequest starts a GET request carrying a copy of opts.
func NewRequest(opts *payments.RequestOptions) Request {
	return Request{
		Method:  "GET",
		Options: opts.Clone(),
	}
}

// WithEndpoint sets the path, e.g. "/v1/payment_intents/pi_123".
func (r Request) WithEndpoint(path string) Request {
	next := r.clone()
	next.Path = path

	return next
}

// WithMethod sets the HTTP verb.
func (r Request) WithMethod(method string) Request {
	next := r.clone()
	next.Method = method

	return next
}

// WithParams replaces the parameters with a copy of params.
func (r Request) WithParams(params *form.Values) Request {
	next := r.clone()
	next.Params = params.Clone()

	return next
}

// WithHeader adds a header sent in addition to the computed ones.
func (r Request) WithHeader(key, value string) Request {
	next := r.clone()
	if next.Headers == nil {
		next.Headers = make(map[string]string, 1)
	}

	next.Headers[key] = value

	return next
}

func (r Request) clone() Request {
	next := r
	next.Options = r.Options.Clone()

	if r.Params != nil {
		next.Params = r.Params.Clone()
	}

	if r.Headers != nil {
		next.Headers = make(map[string]string, len(r.Headers))
		for key, value := range r.Headers {
			next.Headers[key] = value
		}
	}

	return next
}
