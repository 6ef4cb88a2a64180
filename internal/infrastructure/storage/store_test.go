package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/pkg/logger"
	"github.com/doeshing/hateshield/internal/ports"
)

func stores(t *testing.T) map[string]ports.KeyValueStore {
	t.Helper()
	sqlite, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	return map[string]ports.KeyValueStore{
		"sqlite": sqlite,
		"file":   NewFileStore(t.TempDir(), nil),
		"memory": NewMemoryStore(),
	}
}

func TestStoresRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get(ctx, domain.SettingsKey)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, domain.SettingsKey, `{"darkMode":false}`))
			require.NoError(t, store.Set(ctx, domain.SettingsKey, `{"darkMode":true}`))

			value, found, err := store.Get(ctx, domain.SettingsKey)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `{"darkMode":true}`, value)

			require.NoError(t, store.Delete(ctx, domain.SettingsKey))
			require.NoError(t, store.Delete(ctx, domain.SettingsKey))
			_, found, err = store.Get(ctx, domain.SettingsKey)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := OpenSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, domain.RunModeKey, "llm"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(dir)
	require.NoError(t, err)
	defer second.Close()
	value, found, err := second.Get(ctx, domain.RunModeKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "llm", value)
}

func TestFileStoreRecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	store := NewFileStore(t.TempDir(), logger.Wrap(zap.New(core)))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, found, err := store.Get(ctx, domain.HistoryKey)
	require.NoError(t, err)
	assert.False(t, found)

	aside, err := os.ReadFile(store.Path() + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(aside))
	assert.Equal(t, 1, logs.FilterMessage("store file corrupt, moved aside").Len())

	require.NoError(t, store.Set(ctx, domain.HistoryKey, "[]"))
	require.NoError(t, store.Delete(ctx, domain.HistoryKey))
	require.NoError(t, store.Set(ctx, domain.SettingsKey, `{"darkMode":true}`))

	value, found, err := store.Get(ctx, domain.SettingsKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"darkMode":true}`, value)
}

func TestOpenSelectsDriver(t *testing.T) {
	dir := t.TempDir()
	assert.IsType(t, &MemoryStore{}, Open(domain.StorageDriverMemory, dir, nil))
	assert.IsType(t, &FileStore{}, Open(domain.StorageDriverFile, dir, nil))

	store := Open(domain.StorageDriverSQLite, dir, nil)
	defer store.Close()
	assert.IsType(t, &SQLiteStore{}, store)
}
