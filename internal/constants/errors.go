package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'payctl login' or set PAYCTL_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
)

// Authentication errors.
var (
	ErrTokenURLRequired      = errors.New("token URL is required for OAuth2 client credentials")
	ErrStaticKeyCannotRotate = errors.New("static API key cannot be refreshed")
)

// Argument errors.
var (
	ErrAmountRequired   = errors.New("--amount is required")
	ErrCurrencyRequired = errors.New("--currency is required")
	ErrInvalidMetadata  = errors.New("invalid metadata, expected key=value")
	ErrInvalidOutput    = errors.New("invalid output format")
)
