// Package config loads the application configuration from a YAML file with
// environment fallback for the service credential.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Provider selects the enrichment backend: "googleai" or "openai".
	Provider string `yaml:"provider"`
	// APIKey is the service credential. Left empty, it resolves from
	// STASH_API_KEY, then the provider-specific variable.
	APIKey      string `yaml:"api_key"`
	ChatModel   string `yaml:"chat_model"`
	VisionModel string `yaml:"vision_model"`
	DBPath      string `yaml:"db"`
	LogPath     string `yaml:"log"`
	Slot        string `yaml:"slot"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Provider:    "googleai",
		ChatModel:   "gemini-2.5-flash",
		VisionModel: "gemini-2.5-flash-image",
		DBPath:      "stash.sqlite3",
		LogPath:     "stash.log",
		Slot:        "stash_inventory",
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; a file that fails to parse is an error. Fields left empty in the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.resolveAPIKey()
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	cfg.resolveAPIKey()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.ChatModel == "" {
		c.ChatModel = def.ChatModel
	}
	if c.VisionModel == "" {
		c.VisionModel = def.VisionModel
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.Slot == "" {
		c.Slot = def.Slot
	}
}

func (c *Config) resolveAPIKey() {
	if c.APIKey != "" {
		return
	}
	if key := os.Getenv("STASH_API_KEY"); key != "" {
		c.APIKey = key
		return
	}
	switch c.Provider {
	case "googleai":
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
