package domain_test

import (
	"testing"

	"github.com/doeshing/hateshield/internal/domain"
)

// TestConfig_GetDefaultModel tests retrieving the default model
func TestConfig_GetDefaultModel(t *testing.T) {
	tests := []struct {
		name        string
		config      domain.Config
		wantError   bool
		wantModelID string
	}{
		{
			name: "returns default model successfully",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "claude"},
				Models: []domain.ModelDefinition{
					{Name: "claude", ModelID: "claude-3-5-sonnet"},
					{Name: "gemini", ModelID: "gemini-2.0-flash"},
				},
			},
			wantModelID: "claude-3-5-sonnet",
		},
		{
			name: "returns error when default model not found",
			config: domain.Config{
				Preferences: domain.Preferences{DefaultModel: "nonexistent"},
				Models:      []domain.ModelDefinition{{Name: "claude"}},
			},
			wantError: true,
		},
		{
			name: "returns error when no default model configured",
			config: domain.Config{
				Models: []domain.ModelDefinition{{Name: "claude"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := tt.config.GetDefaultModel()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if model.ModelID != tt.wantModelID {
				t.Errorf("got model ID %s, want %s", model.ModelID, tt.wantModelID)
			}
		})
	}
}

// TestConfig_AddModel tests adding a new model
func TestConfig_AddModel(t *testing.T) {
	cfg := domain.Config{}

	if err := cfg.AddModel(domain.ModelDefinition{Name: "ollama"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Preferences.DefaultModel != "ollama" {
		t.Errorf("first model should become default, got %q", cfg.Preferences.DefaultModel)
	}
	if err := cfg.AddModel(domain.ModelDefinition{Name: "ollama"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := cfg.AddModel(domain.ModelDefinition{}); err == nil {
		t.Error("expected missing name error")
	}
}

// TestConfig_RemoveModel tests removing a model
func TestConfig_RemoveModel(t *testing.T) {
	tests := []struct {
		name                string
		modelToRemove       string
		wantError           bool
		expectedDefaultName string
		expectedFallbacks   int
	}{
		{
			name:                "removes non-default model",
			modelToRemove:       "gpt4",
			expectedDefaultName: "claude",
			expectedFallbacks:   0,
		},
		{
			name:                "updates default when removing default model",
			modelToRemove:       "claude",
			expectedDefaultName: "gpt4",
			expectedFallbacks:   1,
		},
		{
			name:          "returns error when model not found",
			modelToRemove: "nonexistent",
			wantError:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.Config{
				Preferences: domain.Preferences{DefaultModel: "claude", FallbackModels: []string{"gpt4"}},
				Models:      []domain.ModelDefinition{{Name: "claude"}, {Name: "gpt4"}},
			}
			err := cfg.RemoveModel(tt.modelToRemove)

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Preferences.DefaultModel != tt.expectedDefaultName {
				t.Errorf("default = %s, want %s", cfg.Preferences.DefaultModel, tt.expectedDefaultName)
			}
			if len(cfg.Preferences.FallbackModels) != tt.expectedFallbacks {
				t.Errorf("fallbacks = %v", cfg.Preferences.FallbackModels)
			}
		})
	}
}

func TestConfig_ModelChainSkipsMissingFallbacks(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "claude", FallbackModels: []string{"claude", "missing", "gemini"}},
		Models:      []domain.ModelDefinition{{Name: "claude"}, {Name: "gemini"}},
	}

	chain := cfg.ModelChain()
	if len(chain) != 2 || chain[0].Name != "claude" || chain[1].Name != "gemini" {
		t.Fatalf("unexpected chain: %+v", chain)
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := domain.Config{}
	if got := cfg.GetStorageDriver(); got != domain.StorageDriverSQLite {
		t.Errorf("driver = %s", got)
	}
	if got := cfg.GetServerAddr(); got != domain.DefaultServerAddr {
		t.Errorf("addr = %s", got)
	}
	if got := cfg.GetDataDir("/home/u"); got != "/home/u/.hateshield/data" {
		t.Errorf("data dir = %s", got)
	}
	cfg.Storage.Driver = "bogus"
	if got := cfg.GetStorageDriver(); got != domain.StorageDriverSQLite {
		t.Errorf("unknown driver should fall back to sqlite, got %s", got)
	}
}

func TestConfig_ValidateConsistency(t *testing.T) {
	cfg := domain.Config{
		Preferences: domain.Preferences{DefaultModel: "claude", FallbackModels: []string{"ghost"}},
		Models:      []domain.ModelDefinition{{Name: "claude"}},
	}
	if err := cfg.ValidateConsistency(); err == nil {
		t.Fatal("expected error for missing fallback")
	}
	cfg.Preferences.FallbackModels = nil
	if err := cfg.ValidateConsistency(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestModelDefinition_Kind(t *testing.T) {
	tests := []struct {
		model domain.ModelDefinition
		want  domain.ProviderKind
	}{
		{domain.ModelDefinition{Endpoint: "https://api.anthropic.com/v1/messages"}, domain.ProviderKindAnthropic},
		{domain.ModelDefinition{Endpoint: "https://api.openai.com/v1/chat/completions"}, domain.ProviderKindOpenAI},
		{domain.ModelDefinition{Name: "gemini-flash"}, domain.ProviderKindGemini},
		{domain.ModelDefinition{Endpoint: "http://localhost:11434/v1/chat/completions"}, domain.ProviderKindOllama},
		{domain.ModelDefinition{Endpoint: "https://example.com"}, domain.ProviderKindUnknown},
	}
	for _, tt := range tests {
		if got := tt.model.Kind(); got != tt.want {
			t.Errorf("Kind(%+v) = %s, want %s", tt.model, got, tt.want)
		}
	}
}
