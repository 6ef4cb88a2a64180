package domain

import "time"

// Settings mirrors the hs_settings record. The whole record is replaced on save.
type Settings struct {
	DarkMode            bool    `json:"darkMode"`
	Animations          bool    `json:"animations"`
	AutoAnalyze         bool    `json:"autoAnalyze"`
	ConfidenceThreshold float64 `json:"confidenceThreshold"`
	ShowEmotions        bool    `json:"showEmotions"`
	BackendURL          string  `json:"backendUrl"`
	RequestTimeout      float64 `json:"requestTimeout"`
	SaveHistory         bool    `json:"saveHistory"`
	HistoryLimit        int     `json:"historyLimit"`
	ShowSuccess         bool    `json:"showSuccess"`
	SoundEffects        bool    `json:"soundEffects"`
}

// DefaultSettings returns the fixed default record.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:            true,
		Animations:          true,
		AutoAnalyze:         false,
		ConfidenceThreshold: 50,
		ShowEmotions:        true,
		BackendURL:          DefaultBackendURL,
		RequestTimeout:      10,
		SaveHistory:         true,
		HistoryLimit:        DefaultHistoryLimit,
		ShowSuccess:         true,
		SoundEffects:        false,
	}
}

// HistoryLimitOrDefault returns the configured history size, falling back to the default.
func (s Settings) HistoryLimitOrDefault() int {
	if s.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return s.HistoryLimit
}

// RequestTimeoutDuration converts requestTimeout seconds to a duration.
func (s Settings) RequestTimeoutDuration() time.Duration {
	const defaultTimeoutSeconds = 10

	if s.RequestTimeout <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}

// BackendURLOrDefault returns the backend URL, falling back to the local default.
func (s Settings) BackendURLOrDefault() string {
	if s.BackendURL == "" {
		return DefaultBackendURL
	}
	return s.BackendURL
}

// ExceedsThreshold reports whether a flagged result is confident enough to warn about.
func (s Settings) ExceedsThreshold(confidence float64) bool {
	return confidence >= s.ConfidenceThreshold
}

// RunMode selects which backend the analyzer talks to; persisted under hs_runMode.
type RunMode string

const (
	RunModeLocal   RunMode = "local"
	RunModeLLM     RunMode = "llm"
	RunModeOffline RunMode = "offline"
)

// DefaultRunMode matches the web client's default selection.
const DefaultRunMode = RunModeLocal

// ParseRunMode validates a run mode string.
func ParseRunMode(raw string) (RunMode, bool) {
	switch RunMode(raw) {
	case RunModeLocal, RunModeLLM, RunModeOffline:
		return RunMode(raw), true
	default:
		return "", false
	}
}
