package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/hateshield/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Preferences: domain.Preferences{DefaultModel: "claude"},
		Models: []domain.ModelDefinition{
			{Name: "claude", Endpoint: "https://api.anthropic.com/v1/messages"},
		},
		Storage: domain.StorageSettings{Driver: domain.StorageDriverSQLite},
		Server:  domain.ServerSettings{Addr: "127.0.0.1:5000"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "empty config", mutate: func(c *domain.Config) { *c = domain.Config{} }},
		{name: "missing default", mutate: func(c *domain.Config) { c.Preferences.DefaultModel = "gpt" }, wantErr: "default model gpt"},
		{name: "duplicate name", mutate: func(c *domain.Config) { c.Models = append(c.Models, c.Models[0]) }, wantErr: "duplicate"},
		{name: "relative endpoint", mutate: func(c *domain.Config) { c.Models[0].Endpoint = "api/v1" }, wantErr: "absolute URL"},
		{name: "bad driver", mutate: func(c *domain.Config) { c.Storage.Driver = "redis" }, wantErr: "storage.driver"},
		{name: "bad addr", mutate: func(c *domain.Config) { c.Server.Addr = "5000" }, wantErr: "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
