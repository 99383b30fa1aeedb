package platform

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

const (
	// DefaultBaseURL is the platform's public REST endpoint.
	DefaultBaseURL = "https://api.seclynx.example.com"

	defaultTimeout = 60 * time.Second
	userAgent      = "SecLynx/1.0"
)

// Config configures a platform Client.
type Config struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	RateLimit   rate.Limit // requests per second; 0 means default
	Burst       int
}

// Client is the signed REST client for the application-security platform.
// One instance per process lifetime; collaborators receive it by injection
// and never construct their own.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	signer     *Signer
	limiter    *rate.Limiter
	logger     *logrus.Logger
	metrics    *utils.MetricsCollector
}

func NewClient(cfg Config, logger *logrus.Logger, metrics *utils.MetricsCollector) (*Client, error) {
	if logger == nil {
		logger = logrus.New()
	}

	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %s", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = rate.Every(100 * time.Millisecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		signer:  NewSigner(cfg.Credentials),
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
		metrics: metrics,
	}
	c.registerMetrics()
	return c, nil
}

func (c *Client) registerMetrics() {
	if c.metrics == nil {
		return
	}
	_ = c.metrics.RegisterCounter("seclynx_api_requests_total",
		"Platform API requests by endpoint and status code", "endpoint", "status")
	_ = c.metrics.RegisterHistogram("seclynx_api_request_duration_seconds",
		"Platform API request duration", nil, "endpoint")
}

// get performs one signed GET against path with query and decodes the JSON
// body into out. Failures are never retried.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if err := c.signer.Sign(req); err != nil {
		return fmt.Errorf("failed to sign request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(path, "transport_error", start)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	c.observe(path, fmt.Sprintf("%d", resp.StatusCode), start)

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *Client) observe(endpoint, status string, start time.Time) {
	c.logger.WithFields(logrus.Fields{
		"endpoint":    endpoint,
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("platform API call")

	if c.metrics == nil {
		return
	}
	c.metrics.IncCounter("seclynx_api_requests_total", 1,
		prometheus.Labels{"endpoint": endpoint, "status": status})
	c.metrics.ObserveHistogram("seclynx_api_request_duration_seconds",
		time.Since(start).Seconds(), prometheus.Labels{"endpoint": endpoint})
}

// readErrorMessage pulls a human-readable message out of an error body when
// the platform supplies one.
func readErrorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
