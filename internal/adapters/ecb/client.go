// Package ecb retrieves and decodes the ECB statistical data API exchange rate feed.
package ecb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
)

// DefaultBaseURL is the public ECB data API host.
const DefaultBaseURL = "https://data-api.ecb.europa.eu"

// Config holds feed client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration // Whole-request timeout for one fetch
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 60 * time.Second,
	}
}

// errNoObservations marks a range the API has no data for (weekends, holidays).
var errNoObservations = errors.New("no observations in range")

// Client fetches the EXR dataset over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ portssvc.FeedSource = (*Client)(nil)

// NewClient creates a new feed Client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// URL builds the EXR request URL for r.
func (c *Client) URL(r domain.DateRange) string {
	return fmt.Sprintf("%s/service/data/EXR?startPeriod=%s&endPeriod=%s&format=structurespecificdata",
		strings.TrimRight(c.cfg.BaseURL, "/"), r.StartISO(), r.EndISO())
}

// FetchRows downloads and parses the feed for r.
func (c *Client) FetchRows(ctx context.Context, r domain.DateRange) ([]domain.FeedRow, error) {
	body, err := c.fetch(ctx, r)
	if errors.Is(err, errNoObservations) {
		return []domain.FeedRow{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	rows, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.URL(r), err)
	}
	return rows, nil
}

func (c *Client) fetch(ctx context.Context, r domain.DateRange) (io.ReadCloser, error) {
	url := c.URL(r)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %v", apperrors.ErrFetch, url, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", apperrors.ErrFetch, url, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		c.logger.Info("No exchange rate observations published for range", slog.String("url", url))
		return nil, errNoObservations
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", apperrors.ErrFetch, url, resp.StatusCode)
	}

	c.logger.Debug("Fetched exchange rate feed",
		slog.String("url", url),
		slog.Duration("latency", time.Since(start)),
	)
	return resp.Body, nil
}
