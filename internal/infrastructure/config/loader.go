package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/hateshield/assets"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/pkg/filesystem"
	"github.com/doeshing/hateshield/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "HATESHIELD_CONFIG"

// FileLoader loads YAML configuration from ~/.hateshield/config.yaml (overridable via HATESHIELD_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded from the embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err := DefaultConfig()
			if err != nil {
				return domain.Config{}, err
			}
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return hydrateDefaults(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".hateshield", "config.yaml")
}

// Save validates and writes cfg.
func (l *FileLoader) Save(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Backup copies the current config next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

// Reset overwrites the config file with the embedded defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if err := writeConfig(path, cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// DefaultConfig parses the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return cfg, nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = domain.StorageDriverSQLite
	}
	if cfg.Storage.DataDir != "" {
		cfg.Storage.DataDir = expandPath(cfg.Storage.DataDir)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = domain.DefaultServerAddr
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
