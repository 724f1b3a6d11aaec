// ABOUTME: Tests for configuration loading and flag merging
// ABOUTME: Uses t.Setenv to control the environment

package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NELLO_USERNAME", "NELLO_PASSWORD", "NELLO_LOCATION",
		"NELLO_CLIENT_ID", "NELLO_API_URL", "NELLO_AUTH_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("NELLO_USERNAME", "alice")
	t.Setenv("NELLO_PASSWORD", "secret")
	t.Setenv("NELLO_API_URL", "api.example.com")

	cfg := Load()
	if cfg.Username != "alice" || cfg.Password != "secret" {
		t.Errorf("unexpected credentials: %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("expected https scheme to be added, got %q", cfg.APIURL)
	}
	if cfg.PublicVariant() {
		t.Error("expected private variant without a client ID")
	}
}

func TestMerge_FlagsTakePriority(t *testing.T) {
	clearEnv(t)
	t.Setenv("NELLO_USERNAME", "env-user")
	t.Setenv("NELLO_PASSWORD", "env-pass")

	cfg := Load()
	cfg.Merge(&Config{Username: "flag-user", Location: "L7"})

	if cfg.Username != "flag-user" {
		t.Errorf("expected flag to win, got %q", cfg.Username)
	}
	if cfg.Password != "env-pass" {
		t.Errorf("expected env fallback, got %q", cfg.Password)
	}
	if cfg.Location != "L7" {
		t.Errorf("expected merged location, got %q", cfg.Location)
	}
}

func TestMerge_AddsScheme(t *testing.T) {
	cfg := &Config{}
	cfg.Merge(&Config{APIURL: "localhost:8080"})
	if cfg.APIURL != "https://localhost:8080" {
		t.Errorf("expected scheme to be added, got %q", cfg.APIURL)
	}
	cfg.Merge(&Config{APIURL: "http://localhost:9090"})
	if cfg.APIURL != "http://localhost:9090" {
		t.Errorf("expected explicit scheme to be kept, got %q", cfg.APIURL)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing username")
	}
	cfg.Username = "alice"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing password")
	}
	cfg.Password = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPublicVariant(t *testing.T) {
	cfg := &Config{ClientID: "client-1"}
	if !cfg.PublicVariant() {
		t.Error("expected public variant with a client ID")
	}
}
