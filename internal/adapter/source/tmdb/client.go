package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultRetryBaseDelay = 300 * time.Millisecond
	defaultBreakerTrip    = 5
	userAgent             = "reel/1.0"

	// maxBodySize bounds how much of a response is read
	maxBodySize = 4 << 20
)

// Config holds the settings for a catalog client
type Config struct {
	BaseURL         string
	APIKey          string
	Language        string
	Timeout         time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration
	BreakerFailures int
}

// Client implements domain.CatalogRepository for the TMDB v3 API
type Client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBaseDelay
	}
	if cfg.BreakerFailures <= 0 {
		cfg.BreakerFailures = defaultBreakerTrip
	}

	trip := uint32(cfg.BreakerFailures)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		// Client-side answers mean the service is up
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrItemNotFound) ||
				errors.Is(err, domain.ErrAuthFailed) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit-breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb:     cb,
		logger: logger,
	}
}

// getJSON performs a GET through the circuit breaker, retrying transient failures
func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (*T, error) {
	requestID := uuid.NewString()
	result, err := c.cb.Execute(func() (interface{}, error) {
		return getJSONWithRetry[T](ctx, c, requestID, path, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("catalog request rejected", "request_id", requestID, "path", path, "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
		}
		return nil, err
	}
	return result.(*T), nil
}

func getJSONWithRetry[T any](ctx context.Context, c *Client, requestID, path string, query url.Values) (*T, error) {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryBaseDelay << (attempt - 1)
			c.logger.Debug("retrying catalog request", "request_id", requestID, "path", path,
				"attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.doRequest(ctx, requestID, path, query)
		if err == nil {
			var out T
			if err := json.Unmarshal(body, &out); err != nil {
				c.logger.Error("JSON parse error", "request_id", requestID, "path", path,
					"error", err, "bodyLen", len(body))
				return nil, fmt.Errorf("failed to parse response: %w", err)
			}
			return &out, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			return nil, err
		}
		c.logger.Warn("catalog request failed", "request_id", requestID, "path", path,
			"attempt", attempt, "error", err)
	}
	return nil, lastErr
}

// retryable reports whether a failed attempt may succeed on retry
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return errors.Is(err, domain.ErrServerOffline) || errors.Is(err, errServerStatus)
}

// errServerStatus marks 5xx and 429 responses
var errServerStatus = errors.New("server error")

// doRequest performs one authenticated HTTP request and maps failure statuses
func (c *Client) doRequest(ctx context.Context, requestID, path string, query url.Values) ([]byte, error) {
	params := url.Values{}
	for k, v := range query {
		params[k] = v
	}
	params.Set("api_key", c.cfg.APIKey)
	if c.cfg.Language != "" {
		params.Set("language", c.cfg.Language)
	}
	reqURL := c.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// The API key travels in the query, so only the path is logged
	c.logger.Debug("catalog request", "request_id", requestID, "path", path, "query", query.Encode())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("catalog request failed", "request_id", requestID, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("catalog response", "request_id", requestID, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		c.logger.Error("catalog request error", "request_id", requestID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %w %d", domain.ErrUnexpectedStatus, errServerStatus, resp.StatusCode)
	default:
		var apiErr ErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		c.logger.Error("catalog request error", "request_id", requestID, "status", resp.StatusCode,
			"message", apiErr.StatusMessage)
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}
}

// Validate checks the configured API key against the service
func (c *Client) Validate(ctx context.Context) error {
	resp, err := getJSON[AuthResponse](ctx, c, "/authentication", nil)
	if err != nil {
		return err
	}
	if !resp.Success {
		return domain.ErrAuthFailed
	}
	return nil
}

// Genres returns the genre list for movies or series
func (c *Client) Genres(ctx context.Context, kind domain.MediaKind) ([]domain.Genre, error) {
	resp, err := getJSON[GenreListResponse](ctx, c, "/genre/"+kind.String()+"/list", nil)
	if err != nil {
		return nil, err
	}
	return MapGenres(resp.Genres), nil
}

// Trending returns a page of the weekly trending feed. A nil kind means all kinds.
func (c *Client) Trending(ctx context.Context, kind *domain.MediaKind, page int) (domain.Page, error) {
	scope := "all"
	if kind != nil {
		scope = kind.String()
	}

	resp, err := getJSON[PagedResponse](ctx, c, "/trending/"+scope+"/week", pageQuery(page))
	if err != nil {
		return domain.Page{}, err
	}

	items := MapItems(resp.Results)
	if kind != nil {
		items = MapItemsAs(resp.Results, *kind)
	}
	return MapPage(resp, items), nil
}

// Discover returns a page of popular items of one kind
func (c *Client) Discover(ctx context.Context, kind domain.MediaKind, genre int, page int) (domain.Page, error) {
	query := pageQuery(page)
	query.Set("sort_by", "popularity.desc")
	if genre != domain.GenreAll {
		query.Set("with_genres", strconv.Itoa(genre))
	}

	resp, err := getJSON[PagedResponse](ctx, c, "/discover/"+kind.String(), query)
	if err != nil {
		return domain.Page{}, err
	}
	return MapPage(resp, MapItemsAs(resp.Results, kind)), nil
}

// Search returns a page of mixed movie/series/person matches
func (c *Client) Search(ctx context.Context, query string, page int) (domain.Page, error) {
	params := pageQuery(page)
	params.Set("query", query)

	resp, err := getJSON[PagedResponse](ctx, c, "/search/multi", params)
	if err != nil {
		return domain.Page{}, err
	}
	return MapPage(resp, MapItems(resp.Results)), nil
}

// GetItem returns one record. Kind is re-derived from the record's fields.
func (c *Client) GetItem(ctx context.Context, kind domain.MediaKind, id int) (*domain.CatalogItem, error) {
	path := fmt.Sprintf("/%s/%d", kind, id)
	raw, err := getJSON[RawItem](ctx, c, path, nil)
	if err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.ErrItemNotFound
	}
	item := NormalizeItem(*raw)
	return &item, nil
}

// GetDetail returns runtime and the top-billed cast for one record
func (c *Client) GetDetail(ctx context.Context, ref domain.ItemRef) (*domain.Detail, error) {
	query := url.Values{}
	query.Set("append_to_response", "credits")

	path := fmt.Sprintf("/%s/%d", ref.Kind, ref.ID)
	resp, err := getJSON[DetailResponse](ctx, c, path, query)
	if err != nil {
		return nil, err
	}
	return MapDetail(ref, resp), nil
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	return query
}
