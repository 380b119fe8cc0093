// Package metadata is the durable key/value store behind the admin session.
// Values are opaque bytes; the session service decides what goes in.
package metadata

import (
	"context"
)

// Repository stores small named values. Get returns (nil, nil) for a missing
// key so callers can tell "absent" from a storage failure.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Has(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
