package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/nikbrunner/mystart/internal/model"
)

// StorageKey is the key the collection is stored under.
const StorageKey = "mystart_favorites_data"

var (
	// ErrNotFound is returned by KV.Get for an absent key.
	ErrNotFound = errors.New("key not found")
	// ErrNoData means nothing has been persisted yet.
	ErrNoData = errors.New("no persisted collection")
	// ErrMalformed means persisted data exists but is not a valid collection.
	ErrMalformed = errors.New("malformed persisted collection")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrInvalidKey is returned for keys that cannot be stored.
	ErrInvalidKey = errors.New("invalid storage key")
)

// KV is an opaque string-keyed store of serialized values.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

var keyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func checkKey(key string) error {
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FileKV implements KV with one JSON file per key in a directory.
type FileKV struct {
	dir string
}

// NewFileKV creates a new FileKV rooted at dir.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Path returns the file path backing key.
func (f *FileKV) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the value for key.
func (f *FileKV) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes the value for key.
// Writes go to a temp file that is renamed over the target.
func (f *FileKV) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path(key))
}

// Close is a no-op.
func (f *FileKV) Close() error {
	return nil
}

// MemoryKV implements KV in memory. Used by tests and headless runs.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string][]byte{}}
}

func (m *MemoryKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.sets++
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}

// Sets returns how many writes the store has received.
func (m *MemoryKV) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// Collections loads and saves the collection through a KV.
type Collections struct {
	kv KV
}

// NewCollections wraps kv.
func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

// LoadCollection reads the persisted collection.
// Returns ErrNoData when nothing was saved and ErrMalformed (wrapping the
// parse error) when the stored value is not a valid collection.
func (c *Collections) LoadCollection() (*model.Store, error) {
	data, err := c.kv.Get(StorageKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoData
		}
		return nil, err
	}

	store, err := model.ParseStore(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return store, nil
}

// SaveCollection writes the full collection as an indented JSON array.
func (c *Collections) SaveCollection(store *model.Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return c.kv.Set(StorageKey, data)
}

// Close closes the underlying KV.
func (c *Collections) Close() error {
	return c.kv.Close()
}

// Open opens the collection store for the configured backend.
func Open(cfg Config) (*Collections, error) {
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendJSON, "":
		return NewCollections(NewFileKV(dir)), nil
	case BackendSQLite:
		kv, err := NewSQLiteKV(filepath.Join(dir, SQLiteFileName))
		if err != nil {
			return nil, err
		}
		return NewCollections(kv), nil
	case BackendMemory:
		return NewCollections(NewMemoryKV()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
