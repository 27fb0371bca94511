package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "3001" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.RoundDurationSeconds != 30 || cfg.RevealDurationSeconds != 6 || cfg.MaxRounds != 10 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("default allow-list should be empty, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ROUND_SECONDS", "45")
	t.Setenv("MAX_ROUNDS", "5")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port = %s", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
	if cfg.RoundDurationSeconds != 45 || cfg.MaxRounds != 5 {
		t.Fatalf("round settings = %+v", cfg)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("ROUND_SECONDS", "not-a-number")
	t.Setenv("MAX_ROUNDS", "-3")

	cfg := Load()
	if cfg.RoundDurationSeconds != 30 || cfg.MaxRounds != 10 {
		t.Fatalf("bad values should keep defaults, got %+v", cfg)
	}
}

func TestAllowsOrigin(t *testing.T) {
	open := Default()
	if !open.AllowsOrigin("https://anywhere.example.com") {
		t.Fatal("empty allow-list must accept every origin")
	}

	cfg := Default()
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	if !cfg.AllowsOrigin("https://app.example.com") {
		t.Fatal("listed origin rejected")
	}
	if !cfg.AllowsOrigin("HTTPS://APP.EXAMPLE.COM") {
		t.Fatal("origin match must be case-insensitive")
	}
	if cfg.AllowsOrigin("https://evil.example.com") {
		t.Fatal("unlisted origin accepted")
	}
	if cfg.AllowsOrigin("") {
		t.Fatal("missing origin accepted against a non-empty allow-list")
	}

	cfg.AllowedOrigins = []string{"*"}
	if !cfg.AllowsOrigin("https://anywhere.example.com") {
		t.Fatal("wildcard entry must accept every origin")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SKETCH_TEST_VALUE=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("SKETCH_TEST_VALUE", "")
	os.Unsetenv("SKETCH_TEST_VALUE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("SKETCH_TEST_VALUE"); got != "from-dotenv" {
		t.Fatalf("SKETCH_TEST_VALUE = %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing .env must not error, got %v", err)
	}
}
