package doctor

import (
	"context"
	"fmt"
	"os"

	appconfig "github.com/doeshing/hateshield/internal/application/config"
	"github.com/doeshing/hateshield/internal/domain"
	"github.com/doeshing/hateshield/internal/ports"
)

// BackendPinger reports the status line of the backend at baseURL.
type BackendPinger func(ctx context.Context, baseURL string) (string, error)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Store          ports.KeyValueStore
	Settings       ports.SettingsProvider
	PingBackend    BackendPinger
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format v%s", cfg.ConfigFormatVersion)))

	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", fmt.Sprintf("%d model(s) declared", len(cfg.Models))))
	}

	checks = append(checks, s.storageCheck(ctx, cfg))

	settings := domain.DefaultSettings()
	if s.Settings != nil {
		settings = s.Settings.GetSettings(ctx)
	}
	checks = append(checks, s.backendCheck(ctx, settings.BackendURLOrDefault()))
	checks = append(checks, apiCheck(cfg.Models))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) storageCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if s.Store == nil {
		return warn("Storage", "store not initialized")
	}
	if _, _, err := s.Store.Get(ctx, domain.SettingsKey); err != nil {
		return fail("Storage", err.Error())
	}
	return ok("Storage", fmt.Sprintf("%s driver ready", cfg.GetStorageDriver()))
}

func (s *Service) backendCheck(ctx context.Context, baseURL string) domain.HealthCheck {
	if s.PingBackend == nil {
		return warn("Backend", "health check not configured")
	}
	pingCtx, cancel := context.WithTimeout(ctx, domain.DefaultHealthTimeout)
	defer cancel()

	status, err := s.PingBackend(pingCtx, baseURL)
	if err != nil {
		return warn("Backend", fmt.Sprintf("%s unreachable: %v", baseURL, err))
	}
	return ok("Backend", fmt.Sprintf("%s: %s", baseURL, status))
}

func apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	for _, model := range models {
		switch model.Kind() {
		case domain.ProviderKindAnthropic:
			if envMissing(model.AuthEnvVar, "ANTHROPIC_API_KEY") {
				return warn("API keys", "ANTHROPIC_API_KEY missing")
			}
		case domain.ProviderKindOpenAI:
			if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
				return warn("API keys", "OPENAI_API_KEY missing")
			}
		case domain.ProviderKindGemini:
			if envMissing(model.AuthEnvVar, "GEMINI_API_KEY") {
				return warn("API keys", "GEMINI_API_KEY missing")
			}
		}
	}
	return ok("API keys", "detected for configured providers")
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
