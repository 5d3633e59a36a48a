package config

import "time"

// RateLimitConfig controls the fixed-window limiter that guards the login
// endpoint against credential stuffing.  Limit requests are allowed per
// Window for a single client IP.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Values are clamped so the limiter cannot be
// misconfigured into blocking everything.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        Limit:   envInt("RATE_LIMIT_LIMIT", 10),
        Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
        Prefix:  envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    if cfg.Limit < 1 {
        cfg.Limit = 1
    }
    if cfg.Window <= 0 {
        cfg.Window = time.Minute
    }
    return cfg
}
