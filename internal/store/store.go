// Package store defines the flat key-value persistence layer.
//
// All application state lives as JSON blobs under a handful of fixed
// logical keys — the same key shapes the browser build of this platform
// keeps in localStorage. There is no relational schema: "ownership" between
// records is by convention, via embedded or matched identifiers, and every
// write is a whole-value replace.
package store

import (
	"context"
	"errors"
)

// ErrNoKey is returned by Get when the key has never been written (or was
// deleted). Callers are expected to fall back to a typed default — a
// missing key is a normal condition, not a failure.
var ErrNoKey = errors.New("store: no such key")

// Fixed logical keys. These names are part of the persisted format and
// must not change: a store written by one build must be readable by the
// next.
const (
	KeyAccounts    = "registeredUsers" // JSON array of model.Account
	KeySession     = "currentUser"     // JSON model.Session (singleton)
	KeyProfile     = "profileData"     // JSON model.Profile (standalone copy)
	KeyCommunities = "communities"     // JSON array of model.Community
)

// UserDataKey returns the aggregate-record key for a user id.
func UserDataKey(userID string) string {
	return "userData_" + userID
}

// KV is the storage contract. Implementations persist raw bytes; JSON
// encoding and the default-on-missing policy live in the codec helpers.
type KV interface {
	// Get returns the value for key, or ErrNoKey if absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any underlying resources.
	Close() error
}
