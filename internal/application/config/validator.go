package config

import (
	"fmt"
	"net"
	"net/url"

	"github.com/doeshing/hateshield/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateModels(cfg.Models); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	return validateServer(cfg.Server)
}

func validateModels(models []domain.ModelDefinition) error {
	seen := make(map[string]struct{}, len(models))
	for i, model := range models {
		if model.Name == "" {
			return fmt.Errorf("models[%d]: name is required", i)
		}
		if _, dup := seen[model.Name]; dup {
			return fmt.Errorf("models[%d]: duplicate model name %s", i, model.Name)
		}
		seen[model.Name] = struct{}{}

		if model.Endpoint != "" {
			u, err := url.Parse(model.Endpoint)
			if err != nil || u.Host == "" {
				return fmt.Errorf("model %s: endpoint must be an absolute URL, got %q", model.Name, model.Endpoint)
			}
		}
		if model.MaxTokens < 0 {
			return fmt.Errorf("model %s: max_tokens must be positive", model.Name)
		}
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	switch storage.Driver {
	case "", domain.StorageDriverSQLite, domain.StorageDriverFile, domain.StorageDriverMemory:
		return nil
	default:
		return fmt.Errorf("storage.driver must be sqlite|file|memory, got %s", storage.Driver)
	}
}

func validateServer(server domain.ServerSettings) error {
	if server.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(server.Addr); err != nil {
		return fmt.Errorf("server.addr: %w", err)
	}
	return nil
}
