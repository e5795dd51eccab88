package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN",
		"GITHUB_API_URL",
		"ACTIONS_INSIGHT_TRANSPORT",
		"ACTIONS_INSIGHT_HTTP_ADDR",
		"ACTIONS_INSIGHT_LOG_LEVEL",
		"ACTIONS_INSIGHT_LOG_FORMAT",
		"REDPANDA_BROKERS",
		"ACTIONS_INSIGHT_EVENTS_TOPIC",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() unexpected error: %v", err)
		}
		if cfg.Server.Transport != TransportStdio {
			t.Errorf("Transport = %q, want stdio", cfg.Server.Transport)
		}
		if cfg.GitHub.Token != "" {
			t.Errorf("Token = %q, want empty", cfg.GitHub.Token)
		}
		if cfg.Events.Enabled() {
			t.Error("Events should be disabled by default")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GITHUB_TOKEN", "test-token-12345")
		t.Setenv("ACTIONS_INSIGHT_TRANSPORT", "http")
		t.Setenv("ACTIONS_INSIGHT_LOG_LEVEL", "debug")
		t.Setenv("REDPANDA_BROKERS", "localhost:19092, broker2:9092,")

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv() unexpected error: %v", err)
		}
		if cfg.GitHub.Token != "test-token-12345" {
			t.Errorf("Token = %v, want test-token-12345", cfg.GitHub.Token)
		}
		if cfg.Server.Transport != TransportHTTP {
			t.Errorf("Transport = %q, want http", cfg.Server.Transport)
		}
		want := []string{"localhost:19092", "broker2:9092"}
		if !reflect.DeepEqual(cfg.Events.Brokers, want) {
			t.Errorf("Brokers = %v, want %v", cfg.Events.Brokers, want)
		}
	})

	t.Run("invalid transport", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ACTIONS_INSIGHT_TRANSPORT", "carrier-pigeon")

		if _, err := LoadFromEnv(); err == nil {
			t.Error("LoadFromEnv() expected error for invalid transport, got nil")
		}
	})
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[github]
token = "file-token"
api_url = "https://ghe.example.com/api/v3"

[server]
transport = "http"
http_addr = ":9090"

[logging]
level = "warn"
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("Token = %q, want env-token (env beats file)", cfg.GitHub.Token)
	}
	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.Server.HTTPAddr)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Events.Topic != defaultEventsTopic {
		t.Errorf("Events.Topic = %q, want default", cfg.Events.Topic)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err != nil {
		t.Errorf("Load() with missing file error = %v, want nil", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\ntransport = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected parse error, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Events.Brokers = []string{"localhost:9092"}
	cfg.Events.Topic = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for brokers without topic")
	}

	cfg = Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for log format")
	}
}
