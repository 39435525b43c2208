package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/viper"
)

// Manager is a key/value settings store backed by a viper instance.
//
// Keys are case-insensitive and may be dotted ("ui.theme") to address nested
// values. Values read from the file are cached until the next Load or ClearCache.
// Raw string values are parsed as JSON when possible, so "42" reads as Int and
// "[1,2]" as Array.
type Manager struct {
	mu    sync.RWMutex
	v     *viper.Viper
	cache map[string]Value
}

// NewManager creates an empty store.
func NewManager() *Manager {
	return &Manager{
		v:     viper.New(),
		cache: make(map[string]Value),
	}
}

// Load replaces the store's contents with the file at path (YAML, JSON or TOML by extension).
func (m *Manager) Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to load config file: "+path,
			"Check the file exists and is valid YAML or JSON")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.v = v
	m.cache = make(map[string]Value)
	return nil
}

// Get returns the value stored under key. A missing key is a ResourceNotFound error.
func (m *Manager) Get(key string) (Value, error) {
	key = normalizeKey(key)

	m.mu.RLock()
	if v, ok := m.cache[key]; ok {
		m.mu.RUnlock()
		return v, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.v.IsSet(key) {
		return Null(), errors.Newf(errors.ErrNotFound, "Config key not found: %s", key)
	}

	var val Value
	if raw, ok := m.v.Get(key).(string); ok {
		val = ParseValue(raw)
	} else {
		val = ValueOf(m.v.Get(key))
	}
	m.cache[key] = val
	return val, nil
}

// GetOr returns the value under key, or def when the key is missing.
func (m *Manager) GetOr(key string, def Value) Value {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	return v
}

// GetString returns key as a string, or def when missing or not convertible.
func (m *Manager) GetString(key, def string) string {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	s, err := v.AsString()
	if err != nil {
		return def
	}
	return s
}

// GetInt returns key as an integer, or def when missing or not convertible.
func (m *Manager) GetInt(key string, def int64) int64 {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	i, err := v.AsInt()
	if err != nil {
		return def
	}
	return i
}

// GetFloat returns key as a float, or def when missing or not convertible.
func (m *Manager) GetFloat(key string, def float64) float64 {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	f, err := v.AsFloat()
	if err != nil {
		return def
	}
	return f
}

// GetBool returns key as a boolean, or def when missing or not convertible.
func (m *Manager) GetBool(key string, def bool) bool {
	v, err := m.Get(key)
	if err != nil {
		return def
	}
	b, err := v.AsBool()
	if err != nil {
		return def
	}
	return b
}

// Has reports whether key is set.
func (m *Manager) Has(key string) bool {
	_, err := m.Get(key)
	return err == nil
}

// Set stores value under key. Saving is a separate step.
func (m *Manager) Set(key string, value Value) error {
	key = normalizeKey(key)
	if key == "" {
		return errors.New(errors.ErrInvalidParameter, "Config key can't be empty", "")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.v.Set(key, value.Interface())
	// Setting a key replaces its children and changes its ancestors.
	for k := range m.cache {
		if strings.HasPrefix(k, key+".") || strings.HasPrefix(key, k+".") {
			delete(m.cache, k)
		}
	}
	m.cache[key] = value
	return nil
}

// Save writes every setting to path, creating parent directories as needed.
// The format follows the file extension.
func (m *Manager) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to save config file: "+path,
			"Check directory permissions")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.v.WriteConfigAs(path); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to save config file: "+path,
			"Use a .yaml, .yml, .json or .toml extension")
	}
	return nil
}

// Keys returns every leaf key in the store, sorted.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := m.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// CachedKeys returns the keys read or written since the last Load, sorted.
func (m *Manager) CachedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.cache))
	for k := range m.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ClearCache forgets cached values; the next Get re-reads the store.
func (m *Manager) ClearCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]Value)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
