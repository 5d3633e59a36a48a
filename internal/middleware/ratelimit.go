package middleware

import (
    "fmt"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/movie-reservation/internal/config"
)

// NewLoginRateLimit returns a fixed-window rate limiter keyed by client IP,
// applied to the login endpoint to slow down credential stuffing.  The
// counter lives in Redis (INCR + EXPIRE) so every instance shares the same
// window.  When Redis is unavailable the limiter fails open: blocking
// logins because the cache is down would be worse than the attack it
// guards against.
func NewLoginRateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    windowSecs := int(cfg.Window.Seconds())
    if windowSecs < 1 {
        windowSecs = 1
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            key := fmt.Sprintf("%s:login:%s", cfg.Prefix, c.RealIP())

            n, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if n == 1 {
                // First hit in this window starts the clock.
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }

            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
            remaining := int64(cfg.Limit) - n
            if remaining < 0 {
                remaining = 0
            }
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if n > int64(cfg.Limit) {
                c.Response().Header().Set("Retry-After", strconv.Itoa(windowSecs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":   "too_many_requests",
                    "message": "rate limit exceeded",
                })
            }
            return next(c)
        }
    }
}
