package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Reel/1.0"
)

// Client implements domain.MovieGateway for the TMDB v3 API
type Client struct {
	baseURL    string
	token      string
	accountID  string
	mediaType  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	mediaType := cfg.MediaType
	if mediaType == "" {
		mediaType = "movie"
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		accountID: cfg.AccountID,
		mediaType: mediaType,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated HTTP request and returns the body of a
// 2xx response
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	c.logger.Debug("tmdb request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "status", resp.StatusCode, "body", string(respBody))
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// getPage fetches a paginated listing
func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) (*domain.Page[T], error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	var page domain.Page[T]
	if err := json.Unmarshal(body, &page); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	return &page, nil
}

// mutate sends a mutation and decodes the acknowledgement
func (c *Client) mutate(ctx context.Context, method, path string, payload any) (*domain.StatusResponse, error) {
	body, err := c.doRequest(ctx, method, path, nil, payload)
	if err != nil {
		return nil, err
	}

	var status domain.StatusResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &status); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return &status, nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return q
}

// Trending returns trending movies for the day or week window
func (c *Client) Trending(ctx context.Context, window domain.TimeWindow, page int) (*domain.MoviePage, error) {
	path := fmt.Sprintf("/trending/movie/%s", window)
	return getPage[domain.Movie](ctx, c, path, pageQuery(page))
}

// Search returns movies matching query
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	q := pageQuery(page)
	q.Set("query", query)
	return getPage[domain.Movie](ctx, c, "/search/movie", q)
}

// Favourites returns the account's favourite movies
func (c *Client) Favourites(ctx context.Context, page int) (*domain.MoviePage, error) {
	path := fmt.Sprintf("/account/%s/favorite/movies", c.accountID)
	return getPage[domain.Movie](ctx, c, path, pageQuery(page))
}

// RatedMovies returns the account's rated movies
func (c *Client) RatedMovies(ctx context.Context, page int) (*domain.RatedPage, error) {
	path := fmt.Sprintf("/account/%s/rated/movies", c.accountID)
	return getPage[domain.RatedMovie](ctx, c, path, pageQuery(page))
}

// MarkFavourite adds or removes a movie from the account's favourites
func (c *Client) MarkFavourite(ctx context.Context, movieID int, favourite bool) (*domain.StatusResponse, error) {
	path := fmt.Sprintf("/account/%s/favorite", c.accountID)
	return c.mutate(ctx, http.MethodPost, path, domain.FavouriteRequest{
		MediaType: c.mediaType,
		MediaID:   movieID,
		Favorite:  favourite,
	})
}

// RateMovie sets the account's rating for a movie
func (c *Client) RateMovie(ctx context.Context, movieID int, value float64) (*domain.StatusResponse, error) {
	path := fmt.Sprintf("/movie/%d/rating", movieID)
	return c.mutate(ctx, http.MethodPost, path, domain.RatingRequest{Value: value})
}

// DeleteRating removes the account's rating for a movie
func (c *Client) DeleteRating(ctx context.Context, movieID int) (*domain.StatusResponse, error) {
	path := fmt.Sprintf("/movie/%d/rating", movieID)
	return c.mutate(ctx, http.MethodDelete, path, nil)
}
