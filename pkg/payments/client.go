package payments

import (
	"time"
)

// Client is the entry point of the binding. Each remote resource is exposed
// through its own resource client.
type Client interface {
	PaymentIntents() PaymentIntentsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a payments.Client.
//
// # Authentication precedence
//
//  1. APIKey: sent as a static Bearer token.
//  2. ClientID/ClientSecret/TokenURL: tokens are obtained with the OAuth2
//     client_credentials grant and refreshed before they expire.
//
// A per-call RequestOptions.APIKey always wins over both.
//
// # Retries
//
// RetryMax defaults to 0: a failed call surfaces immediately and the caller
// decides whether to retry. When RetryMax is raised, connection errors, 429
// and 5xx responses are retried with exponential backoff, and every POST
// without an explicit idempotency key gets a generated one so a retried
// request is never applied twice.
type Config struct {
	// APIKey is the secret key used as a Bearer token.
	APIKey string `validate:"required_without=ClientID"`

	// APIBase is the API origin. Defaults to https://api.stripe.com. payclient.New
	// trims a trailing slash and adds "https://" when no scheme is present.
	APIBase string

	// ClientID, ClientSecret and TokenURL configure the OAuth2
	// client_credentials grant as an alternative to APIKey.
	ClientID     string   `validate:"required_without=APIKey"`
	ClientSecret string   `validate:"required_with=ClientID"`
	TokenURL     string   `validate:"required_with=ClientID,omitempty,url"`
	Scopes       []string `validate:"omitempty,dive,required"`

	// Account is the default connected account (Stripe-Account header).
	Account string
	// APIVersion is the default API version (Stripe-Version header).
	APIVersion string

	// HTTPTimeout bounds a single HTTP attempt. Defaults to 80 seconds.
	HTTPTimeout time.Duration `validate:"gte=0"`
	// RetryMax is the number of automatic retries. Defaults to 0.
	RetryMax int `validate:"gte=0,lte=10"`
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration `validate:"gte=0"`
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration `validate:"gte=0"`

	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger `validate:"-"`
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Interceptors run around every request, in order.
	Interceptors *InterceptorChain `validate:"-"`
}
