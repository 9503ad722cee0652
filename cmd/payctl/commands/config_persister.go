package commands

import (
	"sync"
	"time"
)

// ConfigPersister implements the auth.ConfigPersister interface by writing
// refreshed OAuth2 tokens back to the config file.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// SaveToken stores token and its expiry, leaving the other settings as they are.
func (p *ConfigPersister) SaveToken(token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	config.Token = token
	config.TokenExpiresAt = nil

	if !expiresAt.IsZero() {
		expiry := expiresAt.UTC()
		config.TokenExpiresAt = &expiry
	}

	return saveConfigStruct(config)
}
