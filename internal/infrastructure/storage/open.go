package storage

import (
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// Open returns the store for driver, falling back to the JSON file store when the
// SQLite database cannot be opened.
func Open(driver, dir string, log ports.Logger) ports.KeyValueStore {
	switch driver {
	case domain.StorageDriverMemory:
		return NewMemoryStore()
	case domain.StorageDriverFile:
		return NewFileStore(dir, log)
	}
	store, err := OpenSQLite(dir)
	if err != nil {
		if log != nil {
			log.Warn("sqlite unavailable, using file store", map[string]interface{}{"dir": dir, "error": err.Error()})
		}
		return NewFileStore(dir, log)
	}
	return store
}
