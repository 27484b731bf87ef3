// Package progress holds the persisted per-lesson state: the key-value store
// contract, the key namespace of a lesson and the derived completion summary.
package progress

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// Store is a durable string key-value store. A missing key reports ok=false.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// ErrUnavailable is returned by stores that cannot persist anything.
var ErrUnavailable = errors.New("progress: persistence unavailable")

// MemoryStore keeps values for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Keys returns a copy of every stored key.
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	return out
}

// UnavailableStore fails every call, like a blocked browser storage.
type UnavailableStore struct{}

func (UnavailableStore) Get(context.Context, string) (string, bool, error) {
	return "", false, ErrUnavailable
}

func (UnavailableStore) Set(context.Context, string, string) error { return ErrUnavailable }

func formatBool(b bool) string { return strconv.FormatBool(b) }
