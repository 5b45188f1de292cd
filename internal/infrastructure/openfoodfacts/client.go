package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nutriswap/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// ClientConfig holds the settings for the Open Food Facts client
type ClientConfig struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new Open Food Facts API client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 100
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "NutriSwap/1.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// rate.Limit is requests per second
	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	limiter := rate.NewLimiter(perSecond, 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		rateLimiter: limiter,
		backoff:     exponentialBackoff,
		logger:      logger.Named("openfoodfacts"),
	}
}

// exponentialBackoff returns the wait before retrying after attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// GetProduct retrieves a single product by barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))

	var resp productResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	if resp.Status != 1 || resp.Product == nil {
		c.logger.Debug("product not found", zap.String("barcode", barcode), zap.String("status", resp.StatusVerbose))
		return nil, domain.ErrProductNotFound
	}

	if resp.Product.Code == "" {
		resp.Product.Code = barcode
	}
	product := mapToProduct(resp.Product)
	return &product, nil
}

// SearchProducts runs a full-text product search
func (c *Client) SearchProducts(ctx context.Context, terms string, pageSize int) (*domain.SearchResult, error) {
	params := searchParams(terms, pageSize)
	params.Set("search_simple", "1")
	return c.search(ctx, params)
}

// SearchCategory returns the most popular products matching a category
func (c *Client) SearchCategory(ctx context.Context, category string, pageSize int) (*domain.SearchResult, error) {
	params := searchParams(category, pageSize)
	params.Set("sort_by", "popularity")
	return c.search(ctx, params)
}

func searchParams(terms string, pageSize int) url.Values {
	params := url.Values{}
	params.Set("search_terms", terms)
	params.Set("action", "process")
	params.Set("json", "1")
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	return params
}

func (c *Client) search(ctx context.Context, params url.Values) (*domain.SearchResult, error) {
	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	var resp searchResponse
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, err
	}

	products := mapToProducts(resp.Products)
	c.logger.Debug("search completed",
		zap.String("terms", params.Get("search_terms")),
		zap.Int("count", resp.Count),
		zap.Int("returned", len(products)),
	)

	return &domain.SearchResult{Products: products, Count: resp.Count}, nil
}

// getJSON performs a rate-limited GET with retries and decodes the body into out.
// 404 is returned as ErrProductNotFound without retrying.
func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("request failed", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		} else if status == http.StatusNotFound {
			return domain.ErrProductNotFound
		} else if status != http.StatusOK {
			c.logger.Warn("unexpected status",
				zap.Int("attempt", attempt),
				zap.Int("status", status),
				zap.ByteString("body", truncate(body, 256)),
			)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, status)
		} else {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstreamFailure, err)
			}
			return nil
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}

	c.logger.Error("all retries failed", zap.String("url", redactURL(reqURL)), zap.Error(lastErr))
	return lastErr
}

// doRequest executes an HTTP GET request with proper headers and returns the body
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, err)
	}

	return body, resp.StatusCode, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// redactURL drops the query string for logging
func redactURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
