package store

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when no record exists under the requested key.
	ErrUserNotFound = errors.New("user record not found")
	// ErrUserExists is returned by Create when the key is already taken.
	ErrUserExists = errors.New("user record already exists")
	// ErrRecordCorrupt is returned when a stored blob cannot be decoded.
	ErrRecordCorrupt = errors.New("user record corrupt")
	// ErrStoreUnavailable wraps backend transport failures.
	ErrStoreUnavailable = errors.New("user store unavailable")
)

// UserStore is the keyed record store consumed by the credential lifecycle
// engine. Implementations must be safe for concurrent use.
//
// The store offers no cross-key atomicity. Create is the only conditional
// write: it must fail with [ErrUserExists] instead of overwriting.
type UserStore interface {
	// Get loads the record stored under username.
	Get(ctx context.Context, username string) (*UserRecord, error)

	// Put unconditionally writes the record under record.Username.
	Put(ctx context.Context, record *UserRecord) error

	// Create writes the record under record.Username only if the key is
	// currently unoccupied.
	Create(ctx context.Context, record *UserRecord) error

	// Delete removes the record stored under username.
	Delete(ctx context.Context, username string) error

	// Exists reports whether a record is stored under username.
	Exists(ctx context.Context, username string) (bool, error)
}
