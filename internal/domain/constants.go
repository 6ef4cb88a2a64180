package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Storage keys in the persistent key-value store
const (
	SettingsKey = "hs_settings"
	HistoryKey  = "hs_history"
	RunModeKey  = "hs_runMode"
)

// Text limits
const (
	// MinTextLength is the shortest input that is sent to a backend
	MinTextLength = 3
	// MaxTextLength matches the input field limit of the web client
	MaxTextLength = 5000
	// DisplayTextLength is the prefix kept as the display copy of a history record
	DisplayTextLength = 100
	// AutoAnalyzeMinLength is the length auto-analyze waits for before submitting
	AutoAnalyzeMinLength = 10
)

// Timeout and duration constants
const (
	// AutoAnalyzeQuiet is the debounce period after the last input change
	AutoAnalyzeQuiet = 2 * time.Second
	// DefaultHTTPClientTimeout bounds LLM provider calls
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultHealthTimeout bounds doctor checks against the backend
	DefaultHealthTimeout = 3 * time.Second
)

// History constants
const (
	// DefaultHistoryLimit is the default size of the local history list
	DefaultHistoryLimit = 5
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of tokens
	DefaultMaxTokens = 1024
)

// Server defaults
const (
	DefaultServerAddr = "127.0.0.1:5000"
	DefaultBackendURL = "http://127.0.0.1:5000"
)

// Time formats
const (
	// DateFormat is used for history entries older than a week
	DateFormat = "2006-01-02"
)
