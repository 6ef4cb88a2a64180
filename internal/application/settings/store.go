// Package settings implements the settings store backed by the hs_settings record.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// Store reads and writes the settings record and the last selected run mode.
type Store struct {
	kv  ports.KeyValueStore
	log ports.Logger
}

// NewStore builds a settings store over kv. Recovered errors are reported to log.
func NewStore(kv ports.KeyValueStore, log ports.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// GetDefaultSettings returns the fixed default record.
func GetDefaultSettings() domain.Settings {
	return domain.DefaultSettings()
}

// GetSettings returns the persisted record. Missing keys take their default value;
// an absent, unreadable or corrupt record yields exactly the defaults.
func (s *Store) GetSettings(ctx context.Context) domain.Settings {
	raw, found, err := s.kv.Get(ctx, domain.SettingsKey)
	if err != nil {
		s.log.Warn("failed to read settings, using defaults", map[string]interface{}{"error": err.Error()})
		return GetDefaultSettings()
	}
	if !found {
		return GetDefaultSettings()
	}

	parsed := GetDefaultSettings()
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		s.log.Warn("failed to parse settings, using defaults", map[string]interface{}{"error": err.Error()})
		return GetDefaultSettings()
	}
	return parsed
}

// SaveSettings validates and overwrites the whole record.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.kv.Set(ctx, domain.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Reset overwrites the record with the defaults.
func (s *Store) Reset(ctx context.Context) (domain.Settings, error) {
	defaults := GetDefaultSettings()
	return defaults, s.SaveSettings(ctx, defaults)
}

// ToggleTheme flips darkMode and persists the record.
func (s *Store) ToggleTheme(ctx context.Context) (domain.Settings, error) {
	current := s.GetSettings(ctx)
	current.DarkMode = !current.DarkMode
	return current, s.SaveSettings(ctx, current)
}

// Keys lists the recognised option names in sorted order.
func Keys() []string {
	m, _ := toMap(GetDefaultSettings())
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a single named option.
func (s *Store) Get(ctx context.Context, key string) (interface{}, error) {
	m, err := toMap(s.GetSettings(ctx))
	if err != nil {
		return nil, err
	}
	value, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return value, nil
}

// Set parses value (YAML scalar syntax) into the named option and saves the record.
func (s *Store) Set(ctx context.Context, key, value string) (domain.Settings, error) {
	m, err := toMap(s.GetSettings(ctx))
	if err != nil {
		return domain.Settings{}, err
	}
	if _, ok := m[key]; !ok {
		return domain.Settings{}, fmt.Errorf("unknown setting %q", key)
	}
	m[key] = parseScalar(value)

	raw, err := json.Marshal(m)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("marshal settings: %w", err)
	}
	var updated domain.Settings
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&updated); err != nil {
		return domain.Settings{}, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := s.SaveSettings(ctx, updated); err != nil {
		return domain.Settings{}, err
	}
	return updated, nil
}

// RunMode returns the last selected run mode, defaulting to local.
func (s *Store) RunMode(ctx context.Context) domain.RunMode {
	raw, found, err := s.kv.Get(ctx, domain.RunModeKey)
	if err != nil {
		s.log.Warn("failed to read run mode", map[string]interface{}{"error": err.Error()})
		return domain.DefaultRunMode
	}
	if !found {
		return domain.DefaultRunMode
	}
	mode, ok := domain.ParseRunMode(raw)
	if !ok {
		s.log.Warn("ignoring unknown run mode", map[string]interface{}{"mode": raw})
		return domain.DefaultRunMode
	}
	return mode
}

// SetRunMode persists the selected run mode.
func (s *Store) SetRunMode(ctx context.Context, mode domain.RunMode) error {
	if _, ok := domain.ParseRunMode(string(mode)); !ok {
		return fmt.Errorf("unknown run mode %q (expected local|llm|offline)", mode)
	}
	return s.kv.Set(ctx, domain.RunModeKey, string(mode))
}

// Diff reports the difference between settings and the defaults; empty when equal.
func Diff(settings domain.Settings) string {
	return cmp.Diff(GetDefaultSettings(), settings)
}

func toMap(settings domain.Settings) (map[string]interface{}, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return m, nil
}

// parseScalar parses input as YAML, falling back to the literal string.
func parseScalar(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}
