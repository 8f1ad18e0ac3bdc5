package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:            "production",
		Port:           "8000",
		APIKey:         "secret-key",
		AllowedIP1:     "10.0.0.1",
		HospCode:       "10815",
		DatabaseURL:    "postgres://agent:pw@localhost:5432/his",
		DBMaxConns:     10,
		DBMinConns:     2,
		RequestTimeout: 30 * time.Second,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "secret-key")
	t.Setenv("API_ALLOWED_IP1", "10.0.0.1")
	t.Setenv("HOSP_CODE", "10815")
	t.Setenv("DATABASE_URL", "postgres://agent:pw@localhost:5432/his")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.RequestTimeout)
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev to be true by default")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")
	t.Setenv("API_ALLOWED_IP1", "10.0.0.1")
	t.Setenv("HOSP_CODE", "10815")
	t.Setenv("DATABASE_URL", "postgres://agent:pw@localhost:5432/his")

	if _, err := Load(); err == nil {
		t.Error("expected error when API_KEY is missing")
	}
}

func TestValidate_HospCodeFormat(t *testing.T) {
	for _, code := range []string{"1081", "108155", "1081a", "abcde", ""} {
		cfg := validConfig()
		cfg.HospCode = code
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for hospcode %q", code)
		}
	}

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for valid hospcode: %v", err)
	}
}

func TestValidate_HospCode9Length(t *testing.T) {
	cfg := validConfig()
	cfg.HospCode9 = "EA0010815"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.HospCode9 = "10815"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for short HOSP_CODE9")
	}
}

func TestValidate_RequiresAllowList(t *testing.T) {
	cfg := validConfig()
	cfg.AllowedIP1 = ""
	cfg.AllowedIP2 = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when no allowed IPs are configured")
	}
	if !strings.Contains(err.Error(), "API_ALLOWED_IP1") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestAllowedIPs_ExcludesAbsentEntries(t *testing.T) {
	cfg := validConfig()
	cfg.AllowedIP1 = "10.0.0.1"
	cfg.AllowedIP2 = "  "

	ips := cfg.AllowedIPs()
	if len(ips) != 1 {
		t.Fatalf("expected 1 allowed IP, got %d", len(ips))
	}
	if !ips["10.0.0.1"] {
		t.Error("expected 10.0.0.1 to be allowed")
	}
	if ips[""] {
		t.Error("blank entry must not become a wildcard")
	}
}

func TestValidate_RequestTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero request timeout")
	}
}
