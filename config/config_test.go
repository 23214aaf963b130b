package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.yaml")
	content := `
user: alice
store:
  remote: redis://localhost:6379/0
  debounce: 250ms
advisor:
  model: gemini-2.5-pro
  min_interval: 1m
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIKey, "secret")
	t.Setenv(EnvUser, "")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.User = "alice"
	want.Store.Remote = "redis://localhost:6379/0"
	want.Store.Debounce = 250 * time.Millisecond
	want.Advisor.Model = "gemini-2.5-pro"
	want.Advisor.MinInterval = time.Minute
	want.Advisor.APIKey = "secret"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got.LogLevel() != zerolog.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", got.LogLevel())
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvGoogleAPIKey, "")
	got, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Store.Local != Default().Store.Local || got.Advisor.APIKey != "" {
		t.Errorf("Load() = %+v, want defaults", got)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvUser:         "bob",
		EnvLocalStore:   "/tmp/ft.db",
		EnvGoogleAPIKey: "google-key",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) (string, bool) { v, ok := env[k]; return v, ok })
	if cfg.User != "bob" || cfg.Store.Local != "/tmp/ft.db" || cfg.Advisor.APIKey != "google-key" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
	if got := strings.Join(cfg.Environ(), " "); !strings.Contains(got, EnvUser+"=bob") || strings.Contains(got, "google-key") {
		t.Errorf("Environ() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad scheme", func(c *Config) { c.Store.Remote = "mongodb://db" }, "unsupported scheme"},
		{"no local", func(c *Config) { c.Store.Local = "" }, "path is required"},
		{"negative debounce", func(c *Config) { c.Store.Debounce = -time.Second }, "debounce"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "log level"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want an error containing %q", err, tc.want)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
