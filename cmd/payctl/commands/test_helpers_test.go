package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testAPIKey = "sk_test_4eC39HqLyjWDarjtT1zdp7dc"

const intentFixture = `{
  "id": "pi_3MtwBwLkdIwHu7ix28a3tqPa",
  "object": "payment_intent",
  "amount": 2000,
  "capture_method": "automatic",
  "created": 1680800504,
  "currency": "usd",
  "customer": "cus_NffrFeUfNV2Hib",
  "metadata": {"order_id": "6735"},
  "payment_method_types": ["card"],
  "status": "requires_payment_method"
}`

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

type apiServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *apiServer {
	t.Helper()

	server := &apiServer{}
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

		writer.Header().Set("Request-Id", "req_cli")
		handler(writer, request)
	}))
	t.Cleanup(server.Close)

	return server
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(status)
		_, _ = io.WriteString(writer, body)
	}
}

func (s *apiServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// setupViper resets the global configuration and points the config file at
// a temporary directory. Tests using it must not run in parallel.
func setupViper(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)
	viper.Set("output", "json")

	return configFile
}

// useServer makes the CLI talk to server with a test key.
func useServer(server *apiServer) {
	viper.Set("api_base", server.URL)
	viper.Set("api_key", testAPIKey)
}

// executeCommand runs cmd under a bare root and returns what it printed.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{
		Use:           "payctl",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(cmd)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}
