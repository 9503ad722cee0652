package client

import (
	"errors"

	"github.com/fivetwenty-io/payments-client/internal/auth"
	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/internal/http"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// ErrAPIBaseRequired is returned when Config.APIBase is empty.
var ErrAPIBaseRequired = errors.New("API base URL is required")

// Client implements the payments.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string

	paymentIntents payments.PaymentIntentsClient
}

// createTokenManager picks the credential source from config. An API key
// wins over OAuth2 client credentials.
func createTokenManager(config *payments.Config) auth.TokenManager {
	if config.APIKey != "" {
		return auth.NewStaticKeyManager(config.APIKey)
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     config.TokenURL,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes:       config.Scopes,
		})
	}

	return nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *payments.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.Account != "" {
		httpOpts = append(httpOpts, http.WithAccount(config.Account))
	}

	if config.APIVersion != "" {
		httpOpts = append(httpOpts, http.WithAPIVersion(config.APIVersion))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(min(config.RetryMax, constants.MaxRetryMax), retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client whose credentials come from config.
func New(config *payments.Config) (*Client, error) {
	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a client with a caller-supplied token manager,
// e.g. one that persists refreshed tokens.
func NewWithTokenManager(config *payments.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.APIBase == "" {
		return nil, ErrAPIBaseRequired
	}

	httpClient := http.NewClient(config.APIBase, tokenManager, createHTTPClientOptions(config)...)

	return &Client{
		httpClient:     httpClient,
		tokenManager:   tokenManager,
		baseURL:        config.APIBase,
		paymentIntents: NewPaymentIntentsClient(httpClient),
	}, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the API origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PaymentIntents implements payments.Client.PaymentIntents.
func (c *Client) PaymentIntents() payments.PaymentIntentsClient {
	return c.paymentIntents
}
