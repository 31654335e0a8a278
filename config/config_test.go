package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// clearEnv removes every CATALOGLENS_ variable so one test's settings
// cannot leak into another
func clearEnv(t *testing.T) {
	t.Helper()
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "CATALOGLENS_") {
			key := strings.SplitN(entry, "=", 2)[0]
			os.Unsetenv(key)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("ollama base URL = %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Errorf("ollama model = %q, want mistral", cfg.Ollama.Model)
	}
	if cfg.Images.Enabled {
		t.Error("image search should be disabled by default")
	}
	if cfg.Schema.Path != "schema.json" {
		t.Errorf("schema path = %q, want schema.json", cfg.Schema.Path)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Errorf("cache TTL = %v, want 24h", cfg.Cache.TTL)
	}
	if cfg.Matching.Threshold != 0.6 {
		t.Errorf("matching threshold = %v, want 0.6", cfg.Matching.Threshold)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOGLENS_SERVER_PORT", "9090")
	t.Setenv("CATALOGLENS_SERVER_ENVIRONMENT", "production")
	t.Setenv("CATALOGLENS_OLLAMA_MODEL", "llama3")
	t.Setenv("CATALOGLENS_SCHEMA_PATH", "/etc/cataloglens/schema.json")
	t.Setenv("CATALOGLENS_MATCHING_THRESHOLD", "0.8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Environment != "production" {
		t.Errorf("environment = %q, want production", cfg.Server.Environment)
	}
	if cfg.Ollama.Model != "llama3" {
		t.Errorf("ollama model = %q, want llama3", cfg.Ollama.Model)
	}
	if cfg.Schema.Path != "/etc/cataloglens/schema.json" {
		t.Errorf("schema path = %q", cfg.Schema.Path)
	}
	if cfg.Matching.Threshold != 0.8 {
		t.Errorf("matching threshold = %v, want 0.8", cfg.Matching.Threshold)
	}
}

func TestLoadValidation(t *testing.T) {
	t.Run("rejects out-of-range matching threshold", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATALOGLENS_MATCHING_THRESHOLD", "1.5")

		if _, err := Load(); err == nil {
			t.Error("expected error for threshold above 1")
		}
	})

	t.Run("rejects enabled image search without base URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATALOGLENS_IMAGES_ENABLED", "true")

		if _, err := Load(); err == nil {
			t.Error("expected error for missing images base URL")
		}
	})

	t.Run("accepts enabled image search with base URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CATALOGLENS_IMAGES_ENABLED", "true")
		t.Setenv("CATALOGLENS_IMAGES_BASE_URL", "http://localhost:8888")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Images.BaseURL != "http://localhost:8888" {
			t.Errorf("images base URL = %q", cfg.Images.BaseURL)
		}
	})
}
