package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/catalog"
)

func TestBrowsePassesThroughCatalog(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("upstream path = %q, want /search/movie", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "dune" {
			t.Errorf("upstream query = %q, want dune", got)
		}
		w.Write([]byte(`{"results":[{"id":1}]}`))
	}))
	defer upstream.Close()

	e := echo.New()
	e.GET("/movies", NewMovieHandler(catalog.NewClient(upstream.URL, "k")).Browse)

	rec := doJSON(t, e, http.MethodGet, "/movies?search=dune", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `{"results":[{"id":1}]}` {
		t.Errorf("body = %q, want upstream payload", rec.Body.String())
	}
}

func TestBrowseUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	e := echo.New()
	e.GET("/movies", NewMovieHandler(catalog.NewClient(upstream.URL, "k")).Browse)

	rec := doJSON(t, e, http.MethodGet, "/movies", "", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
