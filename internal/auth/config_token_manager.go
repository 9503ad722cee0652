package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister saves a freshly obtained token so later runs can reuse it.
type ConfigPersister interface {
	SaveToken(token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps OAuth2TokenManager and persists every new token.
// Persistence failures are reported through onError and never fail a call.
type ConfigTokenManager struct {
	oauth2Manager   *OAuth2TokenManager
	configPersister ConfigPersister
	onError         func(error)
	mutex           sync.Mutex
	lastToken       string
}

// NewConfigTokenManager creates a config-persisting token manager seeded
// with a previously cached token.
func NewConfigTokenManager(config *OAuth2Config, persister ConfigPersister, initialToken string, initialExpiry time.Time, onError func(error)) *ConfigTokenManager {
	oauth2Manager := NewOAuth2TokenManager(config)

	if initialToken != "" {
		oauth2Manager.SetToken(initialToken, initialExpiry)
	}

	if onError == nil {
		onError = func(error) {}
	}

	return &ConfigTokenManager{
		oauth2Manager:   oauth2Manager,
		configPersister: persister,
		onError:         onError,
		lastToken:       initialToken,
	}
}

// GetToken returns a valid access token, persisting it when it changed.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.oauth2Manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a token refresh and persists the result.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.oauth2Manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token without persisting it.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.oauth2Manager.SetToken(token, expiresAt)
	m.lastToken = token
}

// GetTokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	token := m.oauth2Manager.Current()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

func (m *ConfigTokenManager) persistIfChanged() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	current := m.oauth2Manager.Current()
	if current == nil || current.AccessToken == m.lastToken {
		return
	}

	m.lastToken = current.AccessToken

	err := m.persistToken(current)
	if err != nil {
		m.onError(err)
	}
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.SaveToken(token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}
