// Package memory is an in-memory store.KV used by unit tests.
//
// It mirrors the sqlite implementation's semantics (whole-value replace,
// ErrNoKey on absent keys, delete is idempotent) without touching disk.
// A mutex guards the map so httptest-driven handler tests are safe too.
package memory

import (
	"context"
	"sync"

	"github.com/sakif/hackhub/internal/store"
)

var _ store.KV = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, store.ErrNoKey
	}
	// Copy so callers can't mutate stored bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) Close() error {
	return nil
}
