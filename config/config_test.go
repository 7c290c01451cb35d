package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
server:
  port: 8000
  name: Test API
model:
  provider: ollama
  name: llama3
pool:
  workers: 2
`

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoadAppliesFileAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Name != "Test API" {
		t.Fatalf("server name = %q", cfg.Server.Name)
	}
	if cfg.Model.Provider != "ollama" || cfg.Model.Name != "llama3" {
		t.Fatalf("model = %+v", cfg.Model)
	}
	if cfg.Pool.Workers != 2 {
		t.Fatalf("workers = %d", cfg.Pool.Workers)
	}
	if cfg.Pool.QueueSize != 64 {
		t.Fatalf("queue size default = %d", cfg.Pool.QueueSize)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout = %s", cfg.Server.ShutdownTimeout)
	}
	if got := cfg.Model.OllamaAddress(); got != "http://localhost:11434" {
		t.Fatalf("ollama address = %q", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("GOOGLE_API_KEY", "secret")

	cfg, err := Load(writeConfig(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9001 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.Address() != "0.0.0.0:9001" {
		t.Fatalf("address = %q", cfg.Server.Address())
	}
	if cfg.Model.APIKey != "secret" {
		t.Fatalf("api key not taken from GOOGLE_API_KEY")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
