package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.HTTP.Timeout.Duration() != 10*time.Second {
		t.Errorf("HTTP.Timeout = %s, want 10s", cfg.HTTP.Timeout.Duration())
	}
	if cfg.HTTP.UserAgent == "" {
		t.Error("HTTP.UserAgent should not be empty")
	}
	if cfg.Resolver.Backend != BackendGeoIP {
		t.Errorf("Resolver.Backend = %s, want %s", cfg.Resolver.Backend, BackendGeoIP)
	}
	if cfg.Batch.Concurrency != 5 {
		t.Errorf("Batch.Concurrency = %d, want 5", cfg.Batch.Concurrency)
	}
	if cfg.Export.Path == "" {
		t.Error("Export.Path should not be empty")
	}
	if len(cfg.Search.Backends) != 2 {
		t.Errorf("Search.Backends = %v, want two entries", cfg.Search.Backends)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `version: 1
http:
  timeout: 30s
resolver:
  backend: cymru
  dns_server: 127.0.0.53:53
search:
  backends: [mojeek]
batch:
  concurrency: 2
  limit: 10
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}

	// Explicit values survive
	if cfg.HTTP.Timeout.Duration() != 30*time.Second {
		t.Errorf("HTTP.Timeout = %s, want 30s", cfg.HTTP.Timeout.Duration())
	}
	if cfg.Resolver.Backend != BackendCymru {
		t.Errorf("Resolver.Backend = %s, want %s", cfg.Resolver.Backend, BackendCymru)
	}
	if cfg.Resolver.DNSServer != "127.0.0.53:53" {
		t.Errorf("Resolver.DNSServer = %s, want 127.0.0.53:53", cfg.Resolver.DNSServer)
	}
	if len(cfg.Search.Backends) != 1 || cfg.Search.Backends[0] != SearchMojeek {
		t.Errorf("Search.Backends = %v, want [mojeek]", cfg.Search.Backends)
	}
	if cfg.Batch.Concurrency != 2 {
		t.Errorf("Batch.Concurrency = %d, want 2", cfg.Batch.Concurrency)
	}
	if cfg.Batch.Limit != 10 {
		t.Errorf("Batch.Limit = %d, want 10", cfg.Batch.Limit)
	}

	// Omitted values fall back to defaults
	if cfg.HTTP.UserAgent != DefaultUserAgent {
		t.Errorf("HTTP.UserAgent = %s, want default", cfg.HTTP.UserAgent)
	}
	if cfg.Sources.SpooferURL == "" {
		t.Error("Sources.SpooferURL should default to a non-empty URL")
	}
	if cfg.Search.Pages != 2 {
		t.Errorf("Search.Pages = %d, want 2", cfg.Search.Pages)
	}
	if cfg.Export.Path == "" {
		t.Error("Export.Path should default to a non-empty path")
	}
}

func TestLoadFromPathEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	// An empty file is equivalent to no file
	def := DefaultConfig()
	if cfg.Resolver.Backend != def.Resolver.Backend {
		t.Errorf("Resolver.Backend = %s, want %s", cfg.Resolver.Backend, def.Resolver.Backend)
	}
	if cfg.Batch.Concurrency != def.Batch.Concurrency {
		t.Errorf("Batch.Concurrency = %d, want %d", cfg.Batch.Concurrency, def.Batch.Concurrency)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "http: [not: a: mapping"},
		{"unknown resolver backend", "resolver:\n  backend: maxmind\n"},
		{"unknown search backend", "search:\n  backends: [google]\n"},
		{"negative limit", "batch:\n  limit: -1\n"},
		{"bad duration", "http:\n  timeout: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, err := LoadFromPath(configPath); err == nil {
				t.Error("LoadFromPath() should fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := LoadFromPath("/nonexistent/spooffinder.yaml"); err == nil {
		t.Error("LoadFromPath() should fail for a missing file")
	}
}

func TestFindConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Set working directory to temp
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Should find config in working directory
	found := FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should find config in working directory")
	}

	// Should prefer explicit env var
	os.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	defer os.Unsetenv(EnvConfigPath)

	// Explicit path doesn't exist, should fall back
	found = FindConfigPath()
	if found == "" {
		t.Error("FindConfigPath() should fall back when env path doesn't exist")
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	// Test YAML marshaling
	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}
