// Package http is the transport of the request pipeline: it turns a Request
// into an authenticated HTTP call and maps the outcome to a Response or a
// *payments.Error.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/payments-client/internal/auth"
	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/internal/form"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// Response is a received HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// Client sends requests to the API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	account      string
	apiVersion   string
	logger       payments.Logger
	debug        bool
	interceptors *payments.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger payments.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig enables automatic retries of connection errors, 429 and
// 5xx responses. POST requests without an idempotency key get a generated
// one when retryMax is positive.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithHTTPTimeout bounds each HTTP attempt.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAccount sets the default Stripe-Account header.
func WithAccount(account string) Option {
	return func(c *Client) {
		c.account = account
	}
}

// WithAPIVersion sets the default Stripe-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithInterceptors runs chain around every request.
func WithInterceptors(chain *payments.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithHTTPClient replaces the underlying *http.Client, e.g. with a test
// server's client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = httpClient
	}
}

// NewClient creates a transport for baseURL. tokenManager may be nil, in
// which case only a per-call API key authenticates requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	// Hand the final response back instead of a "giving up" error so that
	// the decoder can classify it.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
		logger:       payments.NoopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do sends req. A non-2xx response is returned together with a
// *payments.Error; a transport failure returns a nil response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target, body, err := c.encode(req)
	if err != nil {
		return nil, err
	}

	headers, err := c.headers(ctx, req)
	if err != nil {
		return nil, payments.NewConnectivityError(fmt.Errorf("authenticating request: %w", err))
	}

	intercepted := &payments.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: headers,
		Body:    body,
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, payments.NewConnectivityError(err)
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header = intercepted.Headers

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":          req.Method,
			"url":             target,
			"idempotency_key": headers.Get(constants.HeaderIdempotencyKey),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		_ = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &payments.Response{Error: err})

		return nil, payments.NewConnectivityError(err)
	}

	resp, err := readResponse(httpResp)
	if err != nil {
		return nil, payments.NewConnectivityError(err)
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"request_id": resp.RequestID,
			"size":       len(resp.Body),
		})
	}

	err = c.interceptors.ExecuteResponseInterceptors(ctx, intercepted, &payments.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	})
	if err != nil {
		return resp, fmt.Errorf("processing response: %w", err)
	}

	if resp.StatusCode < constants.HTTPStatusOK || resp.StatusCode >= constants.HTTPStatusMultipleChoices {
		return resp, payments.ParseErrorResponse(resp.StatusCode, resp.RequestID, resp.Body)
	}

	return resp, nil
}

// Get sends a GET with params in the query string.
func (c *Client) Get(ctx context.Context, path string, params *form.Values) (*Response, error) {
	return c.Do(ctx, NewRequest(nil).WithEndpoint(path).WithParams(params))
}

// Post sends a POST with params as a form body.
func (c *Client) Post(ctx context.Context, path string, params *form.Values) (*Response, error) {
	return c.Do(ctx, NewRequest(nil).WithMethod(http.MethodPost).WithEndpoint(path).WithParams(params))
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, NewRequest(nil).WithMethod(http.MethodDelete).WithEndpoint(path))
}

func (c *Client) encode(req Request) (string, []byte, error) {
	base := c.baseURL
	if req.Options.BaseURL != "" {
		base = strings.TrimSuffix(req.Options.BaseURL, "/")
	}

	target := base + req.Path

	switch req.Method {
	case http.MethodGet, http.MethodDelete:
		if !req.Params.Empty() {
			target += "?" + req.Params.Encode()
		}

		return target, nil, nil
	case http.MethodPost:
		return target, []byte(req.Params.Encode()), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}
}

func (c *Client) headers(ctx context.Context, req Request) (http.Header, error) {
	headers := make(http.Header)

	token := req.Options.APIKey
	if token == "" && c.tokenManager != nil {
		var err error

		token, err = c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}
	}

	if token != "" {
		headers.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	headers.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	headers.Set(constants.HeaderUserAgent, c.userAgent)

	if req.Method == http.MethodPost {
		headers.Set(constants.HeaderContentType, constants.ContentTypeForm)

		key := req.Options.IdempotencyKey
		if key == "" && c.httpClient.RetryMax > 0 {
			key = payments.NewIdempotencyKey()
		}

		if key != "" {
			headers.Set(constants.HeaderIdempotencyKey, key)
		}
	}

	setFirst(headers, constants.HeaderAccount, req.Options.Account, c.account)
	setFirst(headers, constants.HeaderAPIVersion, req.Options.APIVersion, c.apiVersion)

	for key, value := range req.Options.Headers {
		headers.Set(key, value)
	}

	for key, value := range req.Headers {
		headers.Set(key, value)
	}

	return headers, nil
}

func setFirst(headers http.Header, key string, values ...string) {
	for _, value := range values {
		if value != "" {
			headers.Set(key, value)

			return
		}
	}
}

func readResponse(httpResp *http.Response) (*Response, error) {
	defer func() {
		_ = httpResp.Body.Close()
	}()

	var buf bytes.Buffer

	_, err := io.Copy(&buf, httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       buf.Bytes(),
		RequestID:  httpResp.Header.Get(constants.HeaderRequestID),
	}, nil
}
