package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing

	"github.com/iliyamo/movie-reservation/internal/handler"    // handlers implement the endpoint logic
	"github.com/iliyamo/movie-reservation/internal/middleware" // middleware for JWT auth, caching and rate limiting
)

// RegisterRoutes registers routes that do not depend on any handler state:
// currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the registration/login/profile endpoints.  Register and
// login live under /user-controller/auth and need no token; the profile
// endpoint sits behind the JWT middleware.  The login route additionally
// carries the rate limiter so credential stuffing is slowed down at the
// edge.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, loginLimit echo.MiddlewareFunc) {
	g := e.Group("/user-controller")
	g.POST("/auth/register", a.Register)
	if loginLimit != nil {
		g.POST("/auth/login", a.Login, loginLimit)
	} else {
		g.POST("/auth/login", a.Login)
	}
	g.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}

// RegisterMovies exposes the public catalog proxy.  The cache middleware,
// when provided, keeps repeated browse queries away from the upstream API.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/movies", m.Browse, cache)
	} else {
		e.GET("/movies", m.Browse)
	}
}

// RegisterReservations wires the booking endpoints.  Every route requires a
// valid bearer token; the decoded identity scopes all queries to the
// calling user.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", r.Create)
	g.GET("", r.List)
	g.DELETE("/:id", r.Delete)
}
