package auth

import (
	"context"
	"sync"
	"time"

	"github.com/fivetwenty-io/payments-client/internal/constants"
)

// StaticKeyManager serves a fixed API key.
type StaticKeyManager struct {
	mu  sync.RWMutex
	key string
}

// NewStaticKeyManager creates a manager for key.
func NewStaticKeyManager(key string) *StaticKeyManager {
	return &StaticKeyManager{key: key}
}

// GetToken returns the key. An empty key is an error so that a request is
// never sent with a blank Authorization header.
func (m *StaticKeyManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.key == "" {
		return "", constants.ErrEmptyAPIKey
	}

	return m.key, nil
}

// RefreshToken always fails: API keys are rotated out of band.
func (m *StaticKeyManager) RefreshToken(ctx context.Context) error {
	return constants.ErrStaticKeyCannotRotate
}

// SetToken replaces the key. The expiry is ignored.
func (m *StaticKeyManager) SetToken(token string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.key = token
}
