package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// MemoryStore is an immutable in-memory weather.DataSource. It is populated
// once at construction and never written afterwards, so reads need no locking.
type MemoryStore struct {
	// key: normalized location name
	data map[string]weather.Bundle
}

// NewMemoryStore builds a store from entries. Keys are normalized; every
// bundle must pass weather.Bundle.Validate.
func NewMemoryStore(entries map[string]weather.Bundle) (*MemoryStore, error) {
	data := make(map[string]weather.Bundle, len(entries))
	for k, b := range entries {
		key := weather.Normalize(k)
		if key == "" {
			return nil, fmt.Errorf("empty location key")
		}
		if _, dup := data[key]; dup {
			return nil, fmt.Errorf("duplicate location key %q", key)
		}
		if err := b.Validate(); err != nil {
			return nil, err
		}
		data[key] = b.Clone()
	}
	return &MemoryStore{data: data}, nil
}

// NewSampleStore returns a store seeded with the built-in sample locations.
func NewSampleStore() *MemoryStore {
	s, err := NewMemoryStore(SampleBundles())
	if err != nil {
		// Sample data is static; failing here is a programming error.
		panic(fmt.Sprintf("store: invalid sample data: %v", err))
	}
	return s
}

// Find returns a copy of the bundle stored under key.
func (s *MemoryStore) Find(ctx context.Context, key string) (weather.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return weather.Bundle{}, err
	}

	b, ok := s.data[key]
	if !ok {
		return weather.Bundle{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, key)
	}
	return b.Clone(), nil
}

// Keys returns the supported location keys in sorted order.
func (s *MemoryStore) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
