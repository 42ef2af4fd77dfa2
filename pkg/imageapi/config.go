package imageapi

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Environment variables consulted when no positional arguments are given.
const (
	EnvBaseURL = "IMAGE_SERVICE_URL"
	EnvAPIKey  = "IMAGE_SERVICE_API_KEY"
)

// Config holds the resolved connection settings for the image service.
type Config struct {
	BaseURL string
	APIKey  string
}

// fileConfig parses the "image_service:" section of a YAML config file,
// ignoring other sections.
type fileConfig struct {
	ImageService struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"image_service"`
}

// LoadConfig resolves configuration in priority order: positional arguments
// (baseURL [apiKey]), then environment variables, then the YAML config file.
// configPath may be empty, in which case the default user config location is
// tried.
func LoadConfig(args []string, configPath string) (*Config, error) {
	cfg := &Config{}

	if len(args) > 0 {
		cfg.BaseURL = strings.TrimSpace(args[0])
	}
	if len(args) > 1 {
		cfg.APIKey = strings.TrimSpace(args[1])
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv(EnvBaseURL)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(EnvAPIKey)
	}

	if cfg.BaseURL == "" || cfg.APIKey == "" {
		if fc := loadConfigFile(configPath); fc != nil {
			if cfg.BaseURL == "" {
				cfg.BaseURL = fc.ImageService.BaseURL
			}
			if cfg.APIKey == "" {
				cfg.APIKey = fc.ImageService.APIKey
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("image service base URL is required: pass it as the first argument or set " + EnvBaseURL)
	}
	return nil
}

// loadConfigFile reads the YAML config at path, falling back to the default
// user config location. Missing or unreadable files are not an error.
func loadConfigFile(path string) *fileConfig {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".config", "llm-image", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil
	}
	return &fc
}
