package gate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml"
)

// ErrInvalidItem is returned when an empty item identifier is passed to an
// allowlist operation.
var ErrInvalidItem = errors.New("invalid item identifier")

// ConfigFile is a Config persisted in a TOML file. It is safe for use by
// multiple goroutines.
type ConfigFile struct {
	mu   sync.RWMutex
	conf Config
	path string
}

// OpenConfigFile loads the configuration stored in the file at the path
// passed. If the file does not exist yet, it is created holding
// DefaultConfig.
func OpenConfigFile(path string) (*ConfigFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path must not be empty")
	}
	f := &ConfigFile{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the path of the file.
func (f *ConfigFile) Path() string {
	return f.path
}

// Config returns the configuration last loaded or written.
func (f *ConfigFile) Config() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.conf.clone()
}

// Reload reads the file from disk again, creating it if it was removed.
func (f *ConfigFile) Reload() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reloadLocked()
}

func (f *ConfigFile) reloadLocked() error {
	contents, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.conf = DefaultConfig()
			return f.writeLocked()
		}
		return fmt.Errorf("read config: %w", err)
	}
	// Decoding into the zero value keeps options missing from the file
	// disabled.
	conf := Config{}
	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &conf); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
	}
	f.conf = conf
	return nil
}

// Allow adds the item passed to the allowlist and writes the file. The
// returned bool indicates if the item was newly added.
func (f *ConfigFile) Allow(item string) (bool, error) {
	id := strings.TrimSpace(item)
	if CanonicalItem(id) == "" {
		return false, ErrInvalidItem
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if slices.ContainsFunc(f.conf.ItemAllowlist, sameItem(id)) {
		return false, nil
	}
	previous := f.conf.ItemAllowlist
	f.conf.ItemAllowlist = append(slices.Clone(previous), id)
	if err := f.writeLocked(); err != nil {
		f.conf.ItemAllowlist = previous
		return false, err
	}
	return true, nil
}

// Disallow removes the item passed from the allowlist and writes the file.
// The returned bool indicates if the item was present before the call.
func (f *ConfigFile) Disallow(item string) (bool, error) {
	id := strings.TrimSpace(item)
	if CanonicalItem(id) == "" {
		return false, ErrInvalidItem
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	previous := f.conf.ItemAllowlist
	if !slices.ContainsFunc(previous, sameItem(id)) {
		return false, nil
	}
	f.conf.ItemAllowlist = slices.DeleteFunc(slices.Clone(previous), sameItem(id))
	if err := f.writeLocked(); err != nil {
		f.conf.ItemAllowlist = previous
		return false, err
	}
	return true, nil
}

func (f *ConfigFile) writeLocked() error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	conf := f.conf.clone()
	if conf.ItemAllowlist == nil {
		conf.ItemAllowlist = []string{}
	}
	encoded, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(f.path, encoded, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func sameItem(item string) func(string) bool {
	c := CanonicalItem(item)
	return func(other string) bool {
		return CanonicalItem(other) == c
	}
}
