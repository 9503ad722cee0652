package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fivetwenty-io/payments-client/internal/auth"
	internalhttp "github.com/fivetwenty-io/payments-client/internal/http"
)

const testAPIKey = "sk_test_4eC39HqLyjWDarjtT1zdp7dc"

// recordedRequest is what the test server saw.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

// testServer answers every request with a fixed status and body and records
// the requests it receives.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()

	return newTestServerFunc(t, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Request-Id", "req_test")
		writer.WriteHeader(status)
		_, _ = io.WriteString(writer, body)
	})
}

func newTestServerFunc(t *testing.T, handler http.HandlerFunc) *testServer {
	t.Helper()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		server.mu.Lock()
		server.requests = append(server.requests, recordedRequest{
			Method:   request.Method,
			Path:     request.URL.EscapedPath(),
			RawQuery: request.URL.RawQuery,
			Body:     string(body),
			Header:   request.Header.Clone(),
		})
		server.mu.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *testServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// NewTestClient creates a payment intents client authenticated with a test key.
func NewTestClient(baseURL string) *PaymentIntentsClient {
	httpClient := internalhttp.NewClient(baseURL, auth.NewStaticKeyManager(testAPIKey))

	return NewPaymentIntentsClient(httpClient)
}
