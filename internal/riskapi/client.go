package riskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is where the analysis backend listens by default.
	DefaultBaseURL = "http://127.0.0.1:5000"
	// AnalyzePath is the analysis endpoint.
	AnalyzePath = "/analyze_transaction"
)

// Analyzer submits a transaction for risk analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Result, error)
}

// Config configures a Client.
type Config struct {
	// HTTPClient overrides the transport. Timeout and Token are applied on top of it.
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
}

// Client talks to the analysis backend over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// Ensure we implement the interface.
var _ Analyzer = (*Client)(nil)

// NewClient creates a client for the backend at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}

	if cfg.Timeout > 0 {
		withTimeout := *httpClient
		withTimeout.Timeout = cfg.Timeout
		httpClient = &withTimeout
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(base, "/") + AnalyzePath,
	}, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze posts req and decodes the assessment.
func (c *Client) Analyze(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	slog.Debug("Submitting transaction for analysis",
		"transaction_id", req.TransactionID,
		"request_id", requestID,
		"endpoint", c.endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}
	result.Raw = data

	slog.Debug("Analysis received",
		"transaction_id", req.TransactionID,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return result, nil
}
