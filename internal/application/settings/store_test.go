package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/infrastructure/storage"
	"github.com/doeshing/hateshield/internal/pkg/logger"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return NewStore(kv, logger.NewNop()), kv
}

func TestGetSettingsReturnsDefaultsWhenAbsent(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Equal(t, GetDefaultSettings(), store.GetSettings(context.Background()))
}

func TestGetSettingsReturnsDefaultsOnCorruptData(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"syntax error":  "{darkMode: nope",
		"wrong type":    `{"darkMode": false, "historyLimit": "ten"}`,
		"not an object": `[1,2,3]`,
	} {
		t.Run(name, func(t *testing.T) {
			store, kv := newTestStore(t)
			require.NoError(t, kv.Set(ctx, domain.SettingsKey, raw))
			assert.Equal(t, GetDefaultSettings(), store.GetSettings(ctx))
		})
	}
}

func TestGetSettingsFillsMissingKeysFromDefaults(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)
	require.NoError(t, kv.Set(ctx, domain.SettingsKey, `{"darkMode": false, "historyLimit": 8}`))

	got := store.GetSettings(ctx)
	want := GetDefaultSettings()
	want.DarkMode = false
	want.HistoryLimit = 8
	assert.Equal(t, want, got)
}

func TestSaveSettingsOverwritesWholeRecord(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	custom := GetDefaultSettings()
	custom.SaveHistory = false
	custom.BackendURL = "https://moderation.example.com"
	require.NoError(t, store.SaveSettings(ctx, custom))
	assert.Equal(t, custom, store.GetSettings(ctx))

	custom.HistoryLimit = 0
	err := store.SaveSettings(ctx, custom)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSetParsesTypedValues(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	updated, err := store.Set(ctx, "historyLimit", "12")
	require.NoError(t, err)
	assert.Equal(t, 12, updated.HistoryLimit)

	updated, err = store.Set(ctx, "autoAnalyze", "true")
	require.NoError(t, err)
	assert.True(t, updated.AutoAnalyze)
	assert.Equal(t, 12, updated.HistoryLimit)

	updated, err = store.Set(ctx, "backendUrl", "http://10.0.0.2:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:8080", updated.BackendURL)

	_, err = store.Set(ctx, "historyLimit", "many")
	assert.Error(t, err)
	_, err = store.Set(ctx, "colour", "blue")
	assert.Error(t, err)
	_, err = store.Set(ctx, "confidenceThreshold", "150")
	assert.ErrorIs(t, err, ErrInvalidSettings)

	value, err := store.Get(ctx, "historyLimit")
	require.NoError(t, err)
	assert.EqualValues(t, 12, value)
}

func TestToggleThemeAndReset(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	toggled, err := store.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.False(t, toggled.DarkMode)
	assert.NotEmpty(t, Diff(toggled))

	reset, err := store.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultSettings(), reset)
	assert.Empty(t, Diff(store.GetSettings(ctx)))
}

func TestRunMode(t *testing.T) {
	ctx := context.Background()
	store, kv := newTestStore(t)

	assert.Equal(t, domain.RunModeLocal, store.RunMode(ctx))
	require.NoError(t, store.SetRunMode(ctx, domain.RunModeOffline))
	assert.Equal(t, domain.RunModeOffline, store.RunMode(ctx))
	assert.Error(t, store.SetRunMode(ctx, "cloud"))

	require.NoError(t, kv.Set(ctx, domain.RunModeKey, "garbage"))
	assert.Equal(t, domain.RunModeLocal, store.RunMode(ctx))
}

func TestGetSettingsRecoversFromStoreError(t *testing.T) {
	store := NewStore(failingStore{}, logger.NewNop())
	assert.Equal(t, GetDefaultSettings(), store.GetSettings(context.Background()))
	assert.Equal(t, domain.RunModeLocal, store.RunMode(context.Background()))
}

func TestKeysListsEveryOption(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "darkMode")
	assert.Contains(t, keys, "historyLimit")
	assert.Contains(t, keys, "requestTimeout")
	assert.Len(t, keys, 11)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk unavailable")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("disk unavailable") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("disk unavailable") }
func (failingStore) Close() error                              { return nil }
