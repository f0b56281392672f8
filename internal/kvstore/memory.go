// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

package kvstore

import "sync"

// memoryKV is a map-backed byte-level backend for tests.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns a store backed by an in-process map. Values still round
// trip through JSON, so it exercises the same serialization as Badger.
func NewMemory() *Store {
	return &Store{kv: &memoryKV{data: make(map[string][]byte)}}
}

func (m *memoryKV) get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *memoryKV) set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *memoryKV) close() error {
	return nil
}
