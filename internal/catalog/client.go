// Package catalog proxies movie browsing to the TMDB HTTP API.  The service
// holds no movie data of its own; responses are passed through to the client
// verbatim, including upstream error payloads.
package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client calls the TMDB API.  BaseURL points at the API root (e.g.
// https://api.themoviedb.org/3) and the key is appended to every request.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Result carries an upstream response: the raw JSON body and the upstream
// status code, both forwarded to our client unchanged.
type Result struct {
	Status int
	Body   []byte
}

// Browse fetches a page of movies.  A non-empty search term routes to the
// search endpoint; otherwise the discover endpoint is used with the given
// sort order (popularity.desc when unset).  Page defaults to 1.
func (c *Client) Browse(ctx context.Context, page int, search, sort string) (*Result, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", "fr-FR")
	params.Set("page", strconv.Itoa(page))

	var endpoint string
	if search != "" {
		endpoint = c.baseURL + "/search/movie"
		params.Set("query", search)
	} else {
		endpoint = c.baseURL + "/discover/movie"
		if sort == "" {
			sort = "popularity.desc"
		}
		params.Set("sort_by", sort)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Result{Status: resp.StatusCode, Body: body}, nil
}
