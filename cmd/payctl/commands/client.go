package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/payments-client/internal/auth"
	"github.com/fivetwenty-io/payments-client/internal/client"
	"github.com/fivetwenty-io/payments-client/internal/constants"
	"github.com/fivetwenty-io/payments-client/pkg/payclient"
	"github.com/fivetwenty-io/payments-client/pkg/payments"
)

// CreateClient builds a client from the effective configuration. A secret
// key is used as is; OAuth2 client credentials go through a token manager
// that writes refreshed tokens back to the config file.
func CreateClient(ctx context.Context) (payments.Client, error) {
	config := effectiveConfig()
	paymentsConfig := buildPaymentsConfig(config)

	if config.APIKey != "" {
		return payclient.New(ctx, paymentsConfig)
	}

	if config.ClientID == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	tokenManager := createTokenManager(config)

	paymentsClient, err := client.NewWithTokenManager(paymentsConfig, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return paymentsClient, nil
}

func buildPaymentsConfig(config *Config) *payments.Config {
	paymentsConfig := &payments.Config{
		APIBase:      payclient.NormalizeAPIBase(config.APIBase),
		APIKey:       config.APIKey,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
		Account:      config.Account,
		APIVersion:   config.APIVersion,
		RetryMax:     config.RetryMax,
		UserAgent:    constants.DefaultUserAgent + " payctl",
	}

	chain := payments.NewInterceptorChain()

	if viper.GetBool("verbose") {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)

		paymentsConfig.Logger = payments.NewLogrusLogger(logger)
		paymentsConfig.Debug = true

		chain.AddResponseInterceptor(payments.LoggingResponseInterceptor(paymentsConfig.Logger))
	}

	if rps := viper.GetFloat64("rate_limit"); rps > 0 {
		chain.AddRequestInterceptor(payments.RateLimitInterceptor(rps, 1))
	}

	paymentsConfig.Interceptors = chain

	return paymentsConfig
}

func createTokenManager(config *Config) auth.TokenManager {
	oauth2Config := &auth.OAuth2Config{
		TokenURL:     config.TokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
	}

	var initialExpiry time.Time
	if config.TokenExpiresAt != nil {
		initialExpiry = *config.TokenExpiresAt
	}

	return auth.NewConfigTokenManager(oauth2Config, NewConfigPersister(), config.Token, initialExpiry, func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: failed to save refreshed token: %v\n", err)
	})
}
