package domain

import (
	"fmt"
	"path/filepath"
)

// GetDefaultModel retrieves the default model definition from configuration.
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	model, ok := c.FindModelByName(c.Preferences.DefaultModel)
	if !ok {
		return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
	}
	return model, nil
}

// FindModelByName searches for a model by its name.
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// AddModel adds a new model; names must be unique.
func (c *Config) AddModel(model ModelDefinition) error {
	if model.Name == "" {
		return fmt.Errorf("model name is required")
	}
	if c.HasModel(model.Name) {
		return fmt.Errorf("model with name %s already exists", model.Name)
	}

	c.Models = append(c.Models, model)
	if c.Preferences.DefaultModel == "" {
		c.Preferences.DefaultModel = model.Name
	}
	return nil
}

// RemoveModel removes a model by name, moving the default to the first remaining
// model and dropping it from the fallback chain.
func (c *Config) RemoveModel(name string) error {
	indexToRemove := -1
	for i, model := range c.Models {
		if model.Name == name {
			indexToRemove = i
			break
		}
	}

	if indexToRemove == -1 {
		return fmt.Errorf("model %s not found", name)
	}

	c.Models = append(c.Models[:indexToRemove], c.Models[indexToRemove+1:]...)

	if c.Preferences.DefaultModel == name {
		if len(c.Models) > 0 {
			c.Preferences.DefaultModel = c.Models[0].Name
		} else {
			c.Preferences.DefaultModel = ""
		}
	}

	var fallbacks []string
	for _, fallback := range c.Preferences.FallbackModels {
		if fallback != name {
			fallbacks = append(fallbacks, fallback)
		}
	}
	c.Preferences.FallbackModels = fallbacks

	return nil
}

// SetDefaultModel changes the default model to the specified name
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("cannot set default model: model %s does not exist", name)
	}

	c.Preferences.DefaultModel = name
	return nil
}

// ModelChain returns the default model followed by the existing fallback models.
func (c *Config) ModelChain() []ModelDefinition {
	var chain []ModelDefinition
	if model, err := c.GetDefaultModel(); err == nil {
		chain = append(chain, model)
	}
	for _, name := range c.Preferences.FallbackModels {
		if name == c.Preferences.DefaultModel {
			continue
		}
		if model, ok := c.FindModelByName(name); ok {
			chain = append(chain, model)
		}
	}
	return chain
}

// GetStorageDriver returns the configured storage driver, defaulting to sqlite.
func (c *Config) GetStorageDriver() string {
	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverMemory:
		return c.Storage.Driver
	default:
		return StorageDriverSQLite
	}
}

// GetDataDir returns the data directory, defaulting to ~/.hateshield/data.
func (c *Config) GetDataDir(home string) string {
	if c.Storage.DataDir == "" {
		return filepath.Join(home, ".hateshield", "data")
	}
	return c.Storage.DataDir
}

// GetServerAddr returns the listen address for the bundled server.
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// ValidateConsistency checks that the default and fallback models exist.
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	for _, fallbackName := range c.Preferences.FallbackModels {
		if !c.HasModel(fallbackName) {
			return fmt.Errorf("fallback model %s does not exist in models list", fallbackName)
		}
	}

	return nil
}
