package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoints.
const (
	// DefaultAPIBase is the production API host.
	DefaultAPIBase = "https://api.stripe.com"

	// APIVersionPrefix prefixes every resource path.
	APIVersionPrefix = "/v1"

	// ResourcePaymentIntents is the plural resource name for payment intents.
	ResourcePaymentIntents = "payment_intents"

	// APIPathPaymentIntents for the payment intents collection endpoint.
	APIPathPaymentIntents = APIVersionPrefix + "/" + ResourcePaymentIntents
)

// Payment intent action suffixes.
const (
	ActionConfirm = "confirm"
	ActionCapture = "capture"
	ActionCancel  = "cancel"
)

// HTTP headers.
const (
	HeaderAuthorization  = "Authorization"
	HeaderAccept         = "Accept"
	HeaderContentType    = "Content-Type"
	HeaderUserAgent      = "User-Agent"
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderAccount        = "Stripe-Account"
	HeaderAPIVersion     = "Stripe-Version"
	HeaderRequestID      = "Request-Id"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// DefaultUserAgent is sent when the caller does not override it.
const DefaultUserAgent = "payments-client-go/1.0"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 80 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are disabled unless a caller opts in.
const (
	// DefaultRetryMax is zero: the pipeline does not retry on its own.
	DefaultRetryMax = 0

	// MaxRetryMax caps the number of retries a caller may request.
	MaxRetryMax = 10

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 5 * time.Second
)

// Concurrency and batching limits.
const (
	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 5
)

// HTTP status codes commonly used.
const (
	// HTTPStatusOK represents a successful HTTP response.
	HTTPStatusOK = 200

	// HTTPStatusMultipleChoices is the first status outside the 2xx family.
	HTTPStatusMultipleChoices = 300

	// HTTPStatusBadRequest represents a client error.
	HTTPStatusBadRequest = 400

	// HTTPStatusInternalServerError represents server errors.
	HTTPStatusInternalServerError = 500
)

// Pagination limits.
const (
	// DefaultPageSize is the page size the API applies when none is given.
	DefaultPageSize = 10

	// MaxPageSize is the largest page the API will return.
	MaxPageSize = 100
)

// Circuit breaker defaults.
const (
	// CircuitBreakerThreshold is the failure threshold for circuit breaker.
	CircuitBreakerThreshold = 5

	// CircuitBreakerSuccessThreshold is the success threshold for circuit breaker.
	CircuitBreakerSuccessThreshold = 2

	// CircuitBreakerTimeout is the timeout for circuit breaker.
	CircuitBreakerTimeout = 30 * time.Second
)

// Circuit breaker states.
const (
	StatusClosed   = "closed"
	StatusOpen     = "open"
	StatusHalfOpen = "half-open"
)

// Output formats.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// CLI constants.
const (
	// ConfigDirName is the directory under $HOME holding CLI configuration.
	ConfigDirName = ".payctl"

	// ConfigFileName is the CLI configuration file name without extension.
	ConfigFileName = "config"

	// EnvPrefix is the prefix for environment variables read by the CLI.
	EnvPrefix = "PAYCTL"

	// MinimumArgumentCount is the argument count of KEY VALUE commands.
	MinimumArgumentCount = 2

	// MaskVisibleSuffix is how many trailing characters of a secret stay visible.
	MaskVisibleSuffix = 4
)
