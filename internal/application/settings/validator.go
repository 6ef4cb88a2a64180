package settings

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/doeshing/hateshield/internal/domain"
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Validate ensures the record is usable before it is persisted.
func Validate(s domain.Settings) error {
	if s.HistoryLimit < 1 {
		return fmt.Errorf("%w: historyLimit must be >= 1, got %d", ErrInvalidSettings, s.HistoryLimit)
	}
	if s.ConfidenceThreshold < 0 || s.ConfidenceThreshold > 100 {
		return fmt.Errorf("%w: confidenceThreshold must be within 0-100, got %v", ErrInvalidSettings, s.ConfidenceThreshold)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("%w: requestTimeout must be > 0", ErrInvalidSettings)
	}
	return validateBackendURL(s.BackendURL)
}

func validateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: backendUrl: %v", ErrInvalidSettings, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: backendUrl must use http or https, got %q", ErrInvalidSettings, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: backendUrl must include a host", ErrInvalidSettings)
	}
	return nil
}
