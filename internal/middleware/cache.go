package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "fmt"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/movie-reservation/internal/config"
)

// captureWriter tees the response body into a buffer while forwarding it to
// the client, so a successful response can be stored after the handler ran.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    limit  int
    skip   bool
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    if !cw.skip {
        if cw.limit > 0 && cw.buf.Len()+len(b) > cw.limit {
            // Over the limit, give up on caching this response.
            cw.buf.Reset()
            cw.skip = true
        } else {
            cw.buf.Write(b)
        }
    }
    return cw.ResponseWriter.Write(b)
}

// cacheKey hashes route and raw query under the configured prefix.  The
// catalog proxy serves identical JSON for identical query strings, so
// nothing else needs to contribute to the key.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful GET responses of the routes it wraps.  It
// is used on the catalog proxy so repeated browsing does not hit the
// upstream API.  When caching is disabled or Redis is down, the middleware
// is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !strings.EqualFold(c.Request().Method, http.MethodGet) {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && cw.buf.Len() > 0 {
                // Detached context: the entry should be stored even if the
                // client has already gone away.
                _ = rdb.SetEx(context.Background(), key, cw.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}
