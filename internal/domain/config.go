package domain

// Config mirrors ~/.hateshield/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Models              []ModelDefinition `yaml:"models"`
	Storage             StorageSettings   `yaml:"storage"`
	Server              ServerSettings    `yaml:"server"`
}

// Preferences captures process-level toggles.
type Preferences struct {
	DefaultModel   string   `yaml:"default_model"`
	FallbackModels []string `yaml:"fallback_models,omitempty"`
}

// StorageSettings selects where the key-value store lives.
type StorageSettings struct {
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
}

// ServerSettings configures the bundled analysis server.
type ServerSettings struct {
	Addr string `yaml:"addr"`
}

// Storage drivers
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverFile   = "file"
	StorageDriverMemory = "memory"
)
