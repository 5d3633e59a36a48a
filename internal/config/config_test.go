package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	for k, v := range map[string]string{
		"APP_ENV":              "test",
		"APP_PORT":             "8080",
		"DB_USER":              "app",
		"DB_HOST":              "localhost",
		"DB_PORT":              "3306",
		"DB_NAME":              "movies",
		"JWT_SECRET":           "s3cret",
		"ACCESS_TOKEN_TTL_MIN": "60",
		"BCRYPT_COST":          "10",
		"TMDB_API_URL":         "https://api.themoviedb.org/3",
		"TMDB_API_KEY":         "k",
	} {
		t.Setenv(k, v)
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.AccessTTLMin != 60 {
		t.Errorf("AccessTTLMin = %d", cfg.AccessTTLMin)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d", cfg.BcryptCost)
	}
	if cfg.DBPass != "" {
		t.Errorf("DBPass = %q, want empty when unset", cfg.DBPass)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix != "cache" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_LIMIT", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "-5s")
	cfg := LoadRateLimitConfig()
	if cfg.Limit != 1 {
		t.Errorf("Limit = %d, want clamp to 1", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want clamp to 1m", cfg.Window)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	if !envBool("X_BOOL", false) {
		t.Error("envBool(yes) = false")
	}
	t.Setenv("X_BOOL", "nonsense")
	if envBool("X_BOOL", false) {
		t.Error("envBool(nonsense) should fall back to default")
	}
	t.Setenv("X_DUR", "90s")
	if got := envDur("X_DUR", time.Second); got != 90*time.Second {
		t.Errorf("envDur = %v", got)
	}
	if got := envInt("X_MISSING", 7); got != 7 {
		t.Errorf("envInt default = %d", got)
	}
}
