// Package domain defines core business entities and value objects for HateShield.
//
// This file contains LLM model and provider definitions used by the llm run mode
// and the bundled server. The domain layer is independent of infrastructure concerns.
package domain

import "strings"

// ModelDefinition describes an LLM provider configuration declared in the config file.
type ModelDefinition struct {
	Name       string `yaml:"name"`
	Endpoint   string `yaml:"endpoint"`
	AuthEnvVar string `yaml:"auth_env_var"`
	OrgEnvVar  string `yaml:"org_env_var,omitempty"`
	ModelID    string `yaml:"model_id"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// ProviderKind identifies the wire format a model endpoint speaks.
type ProviderKind string

const (
	ProviderKindAnthropic ProviderKind = "anthropic"
	ProviderKindOpenAI    ProviderKind = "openai"
	ProviderKindOllama    ProviderKind = "ollama"
	ProviderKindGemini    ProviderKind = "gemini"
	ProviderKindUnknown   ProviderKind = "unknown"
)

// Kind infers the provider from the endpoint and name.
func (m ModelDefinition) Kind() ProviderKind {
	nameLower := strings.ToLower(m.Name)

	switch {
	case strings.Contains(m.Endpoint, "anthropic.com"):
		return ProviderKindAnthropic
	case strings.Contains(m.Endpoint, "openai.com"):
		return ProviderKindOpenAI
	case strings.Contains(m.Endpoint, "generativelanguage.googleapis.com"), strings.Contains(nameLower, "gemini"):
		return ProviderKindGemini
	case strings.Contains(nameLower, "ollama"), strings.Contains(m.Endpoint, "11434"), strings.Contains(m.Endpoint, "localhost"):
		return ProviderKindOllama
	default:
		return ProviderKindUnknown
	}
}

// MaxTokensOrDefault returns MaxTokens, falling back to DefaultMaxTokens.
func (m ModelDefinition) MaxTokensOrDefault() int {
	if m.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return m.MaxTokens
}
