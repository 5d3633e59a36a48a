package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"  // HTTP status codes for responses
    "strings"   // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/movie-reservation/internal/utils" // token parsing helper
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the caller's identity into the request context.  The provided
// secret must match the one used when issuing tokens.  This middleware
// wraps every reservation route so handlers can read the authenticated
// user via `c.Get("user_id")` and `c.Get("email")`.  Missing, malformed
// and expired tokens all produce the same 401 response.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            id, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the identity for handlers and downstream middleware.
            c.Set("user_id", id.UserID)
            c.Set("email", id.Email)
            return next(c)
        }
    }
}
