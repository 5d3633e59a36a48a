package handler

import (
    "context"      // context with cancellation for DB calls
    "database/sql" // sentinel errors such as sql.ErrNoRows
    "errors"       // sentinel comparison helpers
    "net/http"     // HTTP status codes and primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/movie-reservation/internal/config"     // app configuration
    "github.com/iliyamo/movie-reservation/internal/model"      // user row type
    "github.com/iliyamo/movie-reservation/internal/repository" // DB repositories
    "github.com/iliyamo/movie-reservation/internal/utils"      // helper functions (hashing, token issuing)
)

// UserStore is the slice of the user repository the auth handler needs.
// Keeping it an interface lets tests swap in an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, username, password string, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the register/login/profile endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil user store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the public view of a user; the password hash never appears in
// a response body.
type userPart struct {
	ID       uint64 `json:"id,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Register: create the user and return its public view.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Email, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"user":    userPart{ID: u.ID, Email: u.Email, Username: u.Username},
	})
}

// Login: verify credentials and return a bearer token.  An unknown email
// and a wrong password produce the same response so account existence
// cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "login successful",
		"access_token": access.Token,
		"user":         userPart{Email: u.Email, Username: u.Username},
	})
}

// Profile: return the identity decoded from the bearer token.  No database
// lookup happens here; the token is the whole session.
func (h *AuthHandler) Profile(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"userId": c.Get("user_id"),
		"email":  c.Get("email"),
	})
}
