package payments

import (
	"github.com/google/uuid"
)

// NewIdempotencyKey returns a random key suitable for the Idempotency-Key
// header.
func NewIdempotencyKey() string {
	return uuid.New().String()
}

// WithIdempotencyKey returns a copy of opts with key set. A nil opts yields
// a fresh RequestOptions.
func WithIdempotencyKey(opts *RequestOptions, key string) *RequestOptions {
	clone := opts.Clone()
	clone.IdempotencyKey = key

	return &clone
}
