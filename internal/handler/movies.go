package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/catalog"
)

// MovieHandler proxies catalog browsing to TMDB.  The route is public and
// its responses are cached by the Redis middleware, so browsing traffic
// rarely reaches the upstream API.
type MovieHandler struct {
	Catalog *catalog.Client
}

func NewMovieHandler(client *catalog.Client) *MovieHandler {
	if client == nil {
		panic("nil catalog client passed to NewMovieHandler")
	}
	return &MovieHandler{Catalog: client}
}

// Browse handles GET /movies?page&search&sort.  The upstream body and
// status are forwarded unchanged; only transport failures produce a local
// error response.
func (h *MovieHandler) Browse(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	search := strings.TrimSpace(c.QueryParam("search"))
	sort := strings.TrimSpace(c.QueryParam("sort"))

	res, err := h.Catalog.Browse(c.Request().Context(), page, search, sort)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "catalog unavailable"})
	}
	return c.Blob(res.Status, echo.MIMEApplicationJSON, res.Body)
}
