package injury

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/intelphredo/bet-smart-playbook-pro-sub001/internal/models"
)

// HTTPConfig holds settings for the injury provider client.
type HTTPConfig struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultHTTPConfig returns recommended defaults.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RateLimit:    5.0,
	}
}

// HTTPService looks up injury reports from the external provider with
// retries and rate limiting.
type HTTPService struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewHTTPService creates the provider client.
func NewHTTPService(cfg HTTPConfig, logger *logrus.Logger) (*HTTPService, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("injury provider base URL is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 5.0
	}

	return &HTTPService{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}, nil
}

// Lookup fetches the provider report for one team.
func (s *HTTPService) Lookup(ctx context.Context, team models.Team) (Report, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return Report{}, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/teams/%s/injuries", s.baseURL, url.PathEscape(team.ID))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Report{}, fmt.Errorf("failed to build injury request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("injury provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("injury provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		KeyPlayersOut int      `json:"keyPlayersOut"`
		Injuries      []string `json:"injuries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("failed to decode injury response: %w", err)
	}

	return Report{
		TeamID:        team.ID,
		KeyPlayersOut: payload.KeyPlayersOut,
		Descriptions:  payload.Injuries,
	}, nil
}
