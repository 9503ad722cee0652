package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/fivetwenty-io/payments-client/internal/constants"
)

// OAuth2Config configures the client_credentials grant.
type OAuth2Config struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// AccessToken seeds the store, e.g. with a token cached by the CLI.
	AccessToken string
	// HTTPClient is used for token requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains and renews access tokens with the OAuth2
// client_credentials grant.
type OAuth2TokenManager struct {
	config *OAuth2Config
	store  *TokenStore
	mu     sync.Mutex
}

// NewOAuth2TokenManager creates a manager. No request is made until the
// first GetToken.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{AccessToken: config.AccessToken, TokenType: "bearer"})
	}

	return manager
}

// GetToken returns a valid access token, fetching a new one if needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited.
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken forces a new token request.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.fetch(ctx)
}

// SetToken stores a token obtained elsewhere.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Current returns the cached token, or nil.
func (m *OAuth2TokenManager) Current() *Token {
	return m.store.Get()
}

func (m *OAuth2TokenManager) fetch(ctx context.Context) error {
	if m.config.TokenURL == "" {
		return constants.ErrTokenURLRequired
	}

	credentials := clientcredentials.Config{
		ClientID:     m.config.ClientID,
		ClientSecret: m.config.ClientSecret,
		TokenURL:     m.config.TokenURL,
		Scopes:       m.config.Scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	if m.config.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.config.HTTPClient)
	}

	token, err := credentials.Token(ctx)
	if err != nil {
		return fmt.Errorf("OAuth2 client_credentials flow failed: %w", err)
	}

	m.store.Set(&Token{
		AccessToken:  token.AccessToken,
		TokenType:    token.TokenType,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	})

	return nil
}
