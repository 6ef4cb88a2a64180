// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (settings store, history cache, analysis flow) depends only
// on these abstractions; concrete adapters live in the infrastructure layer:
//   - Ports: Interfaces defined here (e.g., KeyValueStore, Analyzer)
//   - Adapters: SQLite/file/memory stores, REST/LLM/Gemini analyzers, the cobra CLI
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/hateshield/internal/domain"
)

// KeyValueStore is the origin-scoped persistent store holding serialized records.
// Get reports found=false for a missing key rather than an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ConfigProvider loads the latest process configuration from persistent storage.
// Implementations typically read from ~/.hateshield/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SettingsProvider reads the user settings record.
type SettingsProvider interface {
	GetSettings(ctx context.Context) domain.Settings
}

// HistoryRecorder persists successful analyses.
type HistoryRecorder interface {
	RecordResult(ctx context.Context, result domain.AnalysisResult) (domain.AnalysisRecord, error)
}

// Analyzer is a backend that classifies text. Everything substantive happens behind it.
type Analyzer interface {
	Name() string
	Endpoint() string
	Analyze(ctx context.Context, text string) (domain.AnalysisResult, error)
}

// AnalyzerFactory builds the analyzer for a run mode.
type AnalyzerFactory interface {
	ForMode(mode domain.RunMode, settings domain.Settings, cfg domain.Config) (Analyzer, error)
}

// Notifier surfaces dismissible user feedback.
type Notifier interface {
	Notify(kind domain.FeedbackKind, message string)
}

// Confirmer asks the user for explicit confirmation of a destructive action.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Clipboard provides cross-platform clipboard integration for copying rewrites.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
// It is also the diagnostic channel for recovered persistence errors.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
