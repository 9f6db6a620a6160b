package catalogfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Shanthi551/telecom-data-plan/internal/domain/model"
)

// ErrDisabled is returned when no feed URL is configured.
var ErrDisabled = errors.New("catalog feed disabled")

// maxFeedSize caps the response body read from the feed.
const maxFeedSize = 1 << 20

// Client loads extra plans from a remote catalog.
type Client interface {
	Fetch(ctx context.Context) ([]model.Plan, error)
}

// HTTPClient implements Client over plain HTTP GET.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// planPayload mirrors one entry of the feed JSON array.
type planPayload struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ValidityDays int     `json:"validity_days"`
	DataLimitGB  float64 `json:"data_limit_gb"`
}

// NewHTTPClient creates a feed client with a default timeout.
func NewHTTPClient(feedURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog feed url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog feed url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch downloads the feed and converts it to plans. Entries are returned as-is; validation is the caller's job.
func (c *HTTPClient) Fetch(ctx context.Context) ([]model.Plan, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data []planPayload
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxFeedSize)).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode catalog feed: %w", err)
		}
		plans := make([]model.Plan, 0, len(data))
		for _, p := range data {
			plans = append(plans, model.Plan{
				Name:         p.Name,
				Price:        p.Price,
				ValidityDays: p.ValidityDays,
				DataLimitGB:  p.DataLimitGB,
			})
		}
		return plans, nil
	case http.StatusNoContent:
		return []model.Plan{}, nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("catalog feed request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog feed error: %s", resp.Status)
	}
}

// Disabled is the Client used when no feed is configured.
type Disabled struct{}

// Fetch always reports ErrDisabled.
func (Disabled) Fetch(context.Context) ([]model.Plan, error) {
	return nil, ErrDisabled
}
