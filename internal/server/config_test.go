package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/proforma/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("expected default body limit, got %d", cfg.BodySizeBytes())
	}
	if cfg.Storage.Backend != constants.StorageBackendMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.Storage.Backend)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 2M
defaults: dataset.yaml
logging:
  level: debug
  format: console
storage:
  backend: redis
  redisAddr: localhost:6379
  keyPrefix: test:deals
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 2*1024*1024 {
		t.Fatalf("expected body limit override, got %d", cfg.BodySizeBytes())
	}
	if cfg.Defaults != "dataset.yaml" {
		t.Fatalf("expected defaults path, got %q", cfg.Defaults)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Storage.Backend != "redis" || cfg.Storage.RedisAddr != "localhost:6379" || cfg.Storage.KeyPrefix != "test:deals" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte("maxBodySize: lots\n"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid body size")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/proforma")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := &Config{}
	cfg.ApplyEnv()
	if cfg.Storage.URL != "postgres://localhost/proforma" || cfg.Storage.RedisAddr != "localhost:6379" {
		t.Fatalf("expected environment values, got %+v", cfg.Storage)
	}

	cfg = &Config{}
	cfg.Storage.URL = "postgres://db/other"
	cfg.ApplyEnv()
	if cfg.Storage.URL != "postgres://db/other" {
		t.Fatalf("expected file value to win, got %q", cfg.Storage.URL)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"", constants.DefaultMaxBodySizeBytes, false},
		{"512", 512, false},
		{"256K", 256 * 1024, false},
		{"10mb", 10 * 1024 * 1024, false},
		{"1G", 0, true},
		{"MB", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSize(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSize(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseSize(%q): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}
