package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/config"
	"github.com/iliyamo/movie-reservation/internal/model"
	"github.com/iliyamo/movie-reservation/internal/repository"
	"github.com/iliyamo/movie-reservation/internal/utils"
)

// fakeUsers is an in-memory UserStore keyed by email.
type fakeUsers struct {
	byEmail map[string]model.User
	nextID  uint64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]model.User{}}
}

func (f *fakeUsers) Create(ctx context.Context, email, username, password string, cost int) (model.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	f.nextID++
	u := model.User{ID: f.nextID, Email: email, Username: username, PasswordHash: hash}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 60, BcryptCost: 4}
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authServer(users *fakeUsers) *echo.Echo {
	e := echo.New()
	h := NewAuthHandler(testConfig(), users)
	e.POST("/user-controller/auth/register", h.Register)
	e.POST("/user-controller/auth/login", h.Login)
	return e
}

func TestRegisterReturnsPublicView(t *testing.T) {
	e := authServer(newFakeUsers())

	rec := doJSON(t, e, http.MethodPost, "/user-controller/auth/register",
		`{"email":"a@b.com","username":"ab","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string          `json:"message"`
		User    json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if strings.Contains(strings.ToLower(string(resp.User)), "password") {
		t.Errorf("response leaks a password field: %s", resp.User)
	}
	var u struct {
		ID       uint64 `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(resp.User, &u); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if u.ID == 0 || u.Email != "a@b.com" || u.Username != "ab" {
		t.Errorf("user = %+v", u)
	}
}

func TestRegisterValidation(t *testing.T) {
	e := authServer(newFakeUsers())
	for _, body := range []string{
		`{}`,
		`{"email":"a@b.com"}`,
		`{"email":"a@b.com","username":"ab"}`,
		`not json`,
	} {
		rec := doJSON(t, e, http.MethodPost, "/user-controller/auth/register", body, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := authServer(newFakeUsers())
	body := `{"email":"a@b.com","username":"ab","password":"secret1"}`
	if rec := doJSON(t, e, http.MethodPost, "/user-controller/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec := doJSON(t, e, http.MethodPost, "/user-controller/auth/register", body, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	users := newFakeUsers()
	e := authServer(users)
	doJSON(t, e, http.MethodPost, "/user-controller/auth/register",
		`{"email":"a@b.com","username":"ab","password":"secret1"}`, "")

	rec := doJSON(t, e, http.MethodPost, "/user-controller/auth/login",
		`{"email":"a@b.com","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	id, err := utils.ParseAccessToken("test-secret", resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if id.UserID != 1 || id.Email != "a@b.com" {
		t.Errorf("token identity = %+v", id)
	}
	if resp.User.Email != "a@b.com" || resp.User.Username != "ab" {
		t.Errorf("user part = %+v", resp.User)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newFakeUsers()
	e := authServer(users)
	doJSON(t, e, http.MethodPost, "/user-controller/auth/register",
		`{"email":"a@b.com","username":"ab","password":"secret1"}`, "")

	wrongPass := doJSON(t, e, http.MethodPost, "/user-controller/auth/login",
		`{"email":"a@b.com","password":"nope"}`, "")
	unknownEmail := doJSON(t, e, http.MethodPost, "/user-controller/auth/login",
		`{"email":"nobody@b.com","password":"secret1"}`, "")

	if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want 401 / 401", wrongPass.Code, unknownEmail.Code)
	}
	if wrongPass.Body.String() != unknownEmail.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", wrongPass.Body.String(), unknownEmail.Body.String())
	}
}
