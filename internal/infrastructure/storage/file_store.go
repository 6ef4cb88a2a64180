package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// FileStore keeps every key in a single JSON object file.
type FileStore struct {
	path string
	log  ports.Logger
	mu   sync.Mutex
}

// NewFileStore stores data under <dir>/store.json. log may be nil.
func NewFileStore(dir string, log ports.Logger) *FileStore {
	return &FileStore{path: filepath.Join(dir, "store.json"), log: log}
}

// Get implements ports.KeyValueStore.
func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok := data[key]
	return value, ok, nil
}

// Set implements ports.KeyValueStore.
func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

// Delete implements ports.KeyValueStore.
func (f *FileStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Close is a no-op; every write is flushed immediately.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return f.quarantine(err)
	}
	return data, nil
}

// quarantine moves an unreadable store aside so later writes start from an
// empty object instead of failing on every call.
func (f *FileStore) quarantine(cause error) (map[string]string, error) {
	aside := f.path + ".corrupt"
	if err := os.Rename(f.path, aside); err != nil {
		return nil, err
	}
	if f.log != nil {
		f.log.Warn("store file corrupt, moved aside", map[string]interface{}{
			"path":  f.path,
			"moved": aside,
			"error": cause.Error(),
		})
	}
	return map[string]string{}, nil
}

func (f *FileStore) write(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, domain.SecureFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

var _ ports.KeyValueStore = (*FileStore)(nil)
