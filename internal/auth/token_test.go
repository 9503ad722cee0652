package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/payments-client/internal/auth"
	"github.com/fivetwenty-io/payments-client/internal/constants"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{"nil token", nil, false},
		{"blank access token", &auth.Token{}, false},
		{"api key never expires", &auth.Token{AccessToken: "sk_test_123"}, true},
		{"oauth token with an hour left", &auth.Token{AccessToken: "at", ExpiresAt: now.Add(time.Hour)}, true},
		{"expired oauth token", &auth.Token{AccessToken: "at", ExpiresAt: now.Add(-time.Minute)}, false},
		{"inside the refresh buffer", &auth.Token{AccessToken: "at", ExpiresAt: now.Add(15 * time.Second)}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func TestTokenStore_Concurrent(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())

	var waitGroup sync.WaitGroup

	for worker := 0; worker < 4; worker++ {
		waitGroup.Add(1)

		go func(worker int) {
			defer waitGroup.Done()

			for i := 0; i < 50; i++ {
				if worker%2 == 0 {
					store.Set(&auth.Token{AccessToken: "at_even"})
				} else {
					_ = store.Get()
				}
			}
		}(worker)
	}

	waitGroup.Wait()

	require.NotNil(t, store.Get())
	assert.Equal(t, "at_even", store.Get().AccessToken)

	store.Clear()
	assert.Nil(t, store.Get())
}

func TestStaticKeyManager(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := auth.NewStaticKeyManager("sk_test_abc")

	key, err := manager.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk_test_abc", key)

	require.ErrorIs(t, manager.RefreshToken(ctx), constants.ErrStaticKeyCannotRotate)

	manager.SetToken("rk_test_restricted", time.Time{})

	key, err = manager.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rk_test_restricted", key)

	_, err = auth.NewStaticKeyManager("").GetToken(ctx)
	require.ErrorIs(t, err, constants.ErrEmptyAPIKey)
}
