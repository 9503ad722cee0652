package payments_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := payments.NewInterceptorChain()
	ctx := context.Background()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *payments.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	}).AddRequestInterceptor(func(ctx context.Context, req *payments.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	req := &payments.Request{Method: "GET", Path: "/v1/payment_intents"}

	err := chain.ExecuteRequestInterceptors(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := payments.NewInterceptorChain()
	called := false

	chain.AddResponseInterceptor(func(ctx context.Context, req *payments.Request, resp *payments.Response) error {
		return assert.AnError
	})
	chain.AddResponseInterceptor(func(ctx context.Context, req *payments.Request, resp *payments.Response) error {
		called = true

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &payments.Request{}, &payments.Response{StatusCode: 200})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "response interceptor failed")
	assert.False(t, called)
}

func TestInterceptorChain_Nil(t *testing.T) {
	t.Parallel()

	var chain *payments.InterceptorChain

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &payments.Request{}))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), &payments.Request{}, &payments.Response{}))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := payments.HeaderInterceptor(map[string]string{
		"X-Custom-Header": "custom-value",
		"Stripe-Account":  "acct_123",
	})

	req := &payments.Request{Method: "GET", Path: "/v1/payment_intents"}

	err := interceptor(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "custom-value", req.Headers.Get("X-Custom-Header"))
	assert.Equal(t, "acct_123", req.Headers.Get("Stripe-Account"))
}

func TestAuthenticationInterceptor(t *testing.T) {
	t.Parallel()

	t.Run("sets bearer token", func(t *testing.T) {
		t.Parallel()

		interceptor := payments.AuthenticationInterceptor(func(ctx context.Context) (string, error) {
			return "sk_test_override", nil
		})

		req := &payments.Request{Headers: http.Header{"Authorization": []string{"Bearer old"}}}

		require.NoError(t, interceptor(context.Background(), req))
		assert.Equal(t, "Bearer sk_test_override", req.Headers.Get("Authorization"))
	})

	t.Run("propagates provider error", func(t *testing.T) {
		t.Parallel()

		interceptor := payments.AuthenticationInterceptor(func(ctx context.Context) (string, error) {
			return "", assert.AnError
		})

		err := interceptor(context.Background(), &payments.Request{})
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	base := logrus.New()
	base.SetOutput(&buf)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})

	logger := payments.NewLogrusLogger(base)
	ctx := context.Background()
	req := &payments.Request{Method: "POST", Path: "/v1/payment_intents"}

	require.NoError(t, payments.LoggingInterceptor(logger)(ctx, req))
	require.NoError(t, payments.LoggingResponseInterceptor(logger)(ctx, req, &payments.Response{
		StatusCode: 402,
		Headers:    http.Header{"Request-Id": []string{"req_42"}},
	}))

	out := buf.String()
	assert.Contains(t, out, `"msg":"API Request"`)
	assert.Contains(t, out, `"msg":"API Response Error"`)
	assert.Contains(t, out, `"request_id":"req_42"`)
}

func TestRateLimitInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := payments.RateLimitInterceptor(1, 1)
	req := &payments.Request{}

	require.NoError(t, interceptor(context.Background(), req))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := interceptor(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}

func TestCircuitBreaker(t *testing.T) {
	t.Parallel()

	breaker := payments.NewCircuitBreaker(&payments.CircuitBreakerConfig{
		Threshold:        2,
		Timeout:          100 * time.Millisecond,
		SuccessThreshold: 1,
	})

	requestInterceptor := payments.CircuitBreakerRequestInterceptor(breaker)
	responseInterceptor := payments.CircuitBreakerResponseInterceptor(breaker)

	ctx := context.Background()
	req := &payments.Request{Method: "GET", Path: "/v1/payment_intents"}

	require.NoError(t, requestInterceptor(ctx, req))

	// Client errors never trip the breaker.
	for i := 0; i < 3; i++ {
		require.NoError(t, responseInterceptor(ctx, req, &payments.Response{StatusCode: 402}))
	}

	assert.Equal(t, "closed", breaker.State())

	for i := 0; i < 2; i++ {
		require.NoError(t, responseInterceptor(ctx, req, &payments.Response{StatusCode: 503}))
	}

	err := requestInterceptor(ctx, req)
	require.ErrorIs(t, err, payments.ErrCircuitBreakerOpen)
	assert.Equal(t, "open", breaker.State())

	time.Sleep(150 * time.Millisecond)

	require.NoError(t, requestInterceptor(ctx, req))
	assert.Equal(t, "half-open", breaker.State())

	require.NoError(t, responseInterceptor(ctx, req, &payments.Response{StatusCode: 200}))
	assert.Equal(t, "closed", breaker.State())
	require.NoError(t, requestInterceptor(ctx, req))
}
