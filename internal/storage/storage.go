// Package storage provides local preference persistence.
package storage

import (
	"fmt"
	"strings"
	"sync"
)

// ThemeKey holds the persisted theme flag.
const ThemeKey = "theme"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// PrefStore persists small string preferences.
type PrefStore interface {
	Close() error
	Get(key string) (string, error)
	Put(key, value string) error
}

// NewStore creates the configured storage backend.
func NewStore(typ, path string) (PrefStore, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return NewMemoryStore(), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// ThemeValue returns the stored representation of the dark-mode flag.
func ThemeValue(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// IsDark reports whether a stored theme value selects dark mode.
func IsDark(value string) bool {
	return value == ThemeDark
}

type noopStore struct{}

func (noopStore) Close() error              { return nil }
func (noopStore) Get(string) (string, error) { return "", nil }
func (noopStore) Put(string, string) error   { return nil }

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MemoryStore) Put(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}
