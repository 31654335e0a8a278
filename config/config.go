package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Ollama   OllamaConfig
	Images   ImagesConfig
	Schema   SchemaConfig
	Cache    CacheConfig
	Matching MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OllamaConfig holds extraction model configuration
type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// ImagesConfig holds image search configuration
type ImagesConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// SchemaConfig points at the taxonomy schema document
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds normalization configuration
type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cataloglens/")

	v.SetEnvPrefix("CATALOGLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Model defaults
	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "mistral")

	// Image search defaults
	v.SetDefault("images.enabled", false)
	v.SetDefault("images.base_url", "")

	// Schema defaults
	v.SetDefault("schema.path", "schema.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Matching defaults
	v.SetDefault("matching.threshold", 0.6)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Schema.Path == "" {
		return fmt.Errorf("schema path is required (set CATALOGLENS_SCHEMA_PATH)")
	}

	if config.Ollama.Model == "" {
		return fmt.Errorf("ollama model is required (set CATALOGLENS_OLLAMA_MODEL)")
	}

	if config.Images.Enabled && config.Images.BaseURL == "" {
		return fmt.Errorf("images base URL is required when image search is enabled")
	}

	if config.Matching.Threshold <= 0 || config.Matching.Threshold > 1 {
		return fmt.Errorf("matching threshold must be in (0, 1], got: %v", config.Matching.Threshold)
	}

	return nil
}
