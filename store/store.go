// Package store provides the variant store: a key/value space holding
// transformed documents keyed by source identity and variant name.
package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Get when no variant exists under the key.
var ErrNotFound = errors.New("store: variant not found")

// Key identifies a cached variant. FileID is the host's stable file handle,
// Hash is a digest of the source bytes, Variant is the canonical transform
// chain name. Changing the source content changes the hash, so stale
// variants are orphaned rather than overwritten.
type Key struct {
	FileID  string
	Hash    string
	Variant string
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%s/%s", k.FileID, k.Hash, k.Variant)
}

// Store is the variant store abstraction. Put must be last-write-wins safe:
// racing writers under the same key produce byte-identical content, so no
// locking beyond the store's own consistency is required.
type Store interface {
	Exists(key Key) (bool, error)
	Get(key Key) ([]byte, error)
	Put(key Key, data []byte) error
}

// Memory is an in-process Store, the default when no persistent store is
// configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: map[string][]byte{}}
}

func (m *Memory) Exists(key Key) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key.String()]
	return ok, nil
}

func (m *Memory) Get(key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[key.String()]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Put(key Key, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key.String()] = stored
	return nil
}

// Len returns the number of stored variants.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
