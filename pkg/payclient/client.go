// Package payclient provides the main entry point for creating payments API clients.
package payclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivetwenty-io/payments-client/internal/client"
	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// New creates a payments API client. config is copied; the caller's value is
// not modified.
func New(ctx context.Context, config *payments.Config) (payments.Client, error) {
	if config == nil {
		return nil, payments.ErrConfigRequired
	}

	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	normalized := *config
	normalized.APIBase = NormalizeAPIBase(config.APIBase)

	if normalized.APIKey == "" && normalized.ClientID == "" {
		return nil, payments.ErrCredentialsMissing
	}

	err = validator.New(validator.WithRequiredStructEnabled()).Struct(&normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	paymentsClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return paymentsClient, nil
}

// NormalizeAPIBase trims a trailing slash and adds "https://" when no scheme
// is present. An empty value yields the production API.
func NormalizeAPIBase(apiBase string) string {
	apiBase = strings.TrimSuffix(strings.TrimSpace(apiBase), "/")
	if apiBase == "" {
		return constants.DefaultAPIBase
	}

	if !strings.HasPrefix(apiBase, "http://") && !strings.HasPrefix(apiBase, "https://") {
		apiBase = "https://" + apiBase
	}

	return apiBase
}

// NewWithAPIKey creates a client for the production API authenticated with a secret key.
func NewWithAPIKey(ctx context.Context, apiKey string) (payments.Client, error) {
	return New(ctx, &payments.Config{
		APIKey: apiKey,
	})
}

// NewWithClientCredentials creates a client using OAuth2 client credentials.
func NewWithClientCredentials(ctx context.Context, apiBase, tokenURL, clientID, clientSecret string) (payments.Client, error) {
	return New(ctx, &payments.Config{
		APIBase:      apiBase,
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}
