package distributor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/thegunfirm/Mag-Lock-sub017/internal/shared/errors"
)

const (
	// DefaultOrderURL is the production order intake endpoint.
	DefaultOrderURL = "https://engine.thegunfirm.com/api/orders"
	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader carries the distributor API key.
	APIKeyHeader = "TGF-API-KEY"
	// APIKeyEnv names the configuration value reported when the key is missing.
	APIKeyEnv = "TGF_API_KEY"

	maxResponseSize = 10 * 1024 * 1024
	maxErrorSnippet = 512
)

// Config holds the distributor endpoint settings.
type Config struct {
	OrderURL string
	APIKey   string
	Timeout  time.Duration
}

// Client posts orders to the distributor. It makes exactly one attempt per call.
type Client struct {
	orderURL   string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient instantiates the distributor client with sane defaults. A missing
// API key is not an error here; it is reported on first use.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	orderURL := strings.TrimSpace(cfg.OrderURL)
	if orderURL == "" {
		orderURL = DefaultOrderURL
	}
	if !strings.HasPrefix(orderURL, "http://") && !strings.HasPrefix(orderURL, "https://") {
		return nil, fmt.Errorf("distributor order URL must be absolute: %q", orderURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		orderURL:   orderURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// SubmitOrder marshals payload and posts it.
func (c *Client) SubmitOrder(ctx context.Context, payload OrderPayload) (sent, response json.RawMessage, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal order payload: %w", err)
	}
	response, err = c.Submit(ctx, body)
	return body, response, err
}

// Submit posts body as-is and returns the distributor's response verbatim.
// The API key is checked before any network activity.
func (c *Client) Submit(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("distributor client not configured")
	}
	if c.apiKey == "" {
		return nil, apierrors.NewConfigurationError(APIKeyEnv)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.orderURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build distributor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(APIKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apierrors.SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &apierrors.SubmissionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apierrors.SubmissionError{
			StatusCode: resp.StatusCode,
			Err:        errors.New(errorMessage(raw, resp.Status)),
		}
	}
	return decodeResponse(raw), nil
}

// decodeResponse passes JSON through untouched and wraps anything else as a JSON string.
func decodeResponse(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}

func errorMessage(body []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return msg
		}
	}
	snippet := strings.TrimSpace(string(body))
	if snippet == "" {
		return fallback
	}
	if len(snippet) > maxErrorSnippet {
		snippet = snippet[:maxErrorSnippet]
	}
	return fallback + ": " + snippet
}
