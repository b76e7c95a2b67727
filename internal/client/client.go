package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/slok/todoq/internal/log"
	"github.com/slok/todoq/internal/model"
)

// HealthReporter receives advisory connection outcome signals from the
// transport. Signals never alter the returned result.
type HealthReporter interface {
	ReportSuccess(latency time.Duration)
	ReportFailure()
}

type noopReporter struct{}

func (noopReporter) ReportSuccess(time.Duration) {}
func (noopReporter) ReportFailure()              {}

// Gateway is the typed surface of the remote to-do API.
type Gateway interface {
	List(ctx context.Context, filter model.Filter) ([]model.Task, error)
	Create(ctx context.Context, input model.TaskCreate) (*model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskUpdate) (*model.Task, error)
	ToggleCompletion(ctx context.Context, id string) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]string, error)
	ListArchive(ctx context.Context) ([]model.ArchiveGroup, error)
}

//go:generate mockery --case underscore --output clientmock --outpkg clientmock --name Gateway

// ClientConfig is the configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API base, e.g. "http://localhost:8080/api".
	BaseURL    string
	HTTPClient *http.Client
	Health     HealthReporter
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}

	if c.Health == nil {
		c.Health = noopReporter{}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "client.Client"})

	return nil
}

// Client implements Gateway over JSON/HTTP. It classifies every outcome as
// success, ApplicationError or NetworkError, and never retries: retry policy
// belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	health     HealthReporter
	logger     log.Logger
}

// NewClient creates a new API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		health:     cfg.Health,
		logger:     cfg.Logger,
	}, nil
}

var _ Gateway = (*Client)(nil)

// apiError is the error body shape the API uses.
type apiError struct {
	Code    string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// doJSON executes one request/response exchange and normalizes the outcome.
// A 204 maps to the zero value of T.
func doJSON[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var zero T

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("could not marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return zero, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debugf("%s %s", method, reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.health.ReportFailure()
		return zero, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	latency := time.Since(start)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.health.ReportFailure()
		return zero, &NetworkError{Err: fmt.Errorf("could not read response body: %w", err), StatusCode: resp.StatusCode}
	}

	// 5xx means the server or the infrastructure is at fault, not our input.
	if resp.StatusCode >= http.StatusInternalServerError {
		c.health.ReportFailure()
		return zero, &NetworkError{StatusCode: resp.StatusCode, RawBody: string(respBody)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := apiError{}
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Message == "" {
			c.health.ReportFailure()
			return zero, &NetworkError{StatusCode: resp.StatusCode, RawBody: string(respBody)}
		}

		// The server answered, the connection itself is fine.
		c.health.ReportSuccess(latency)
		return zero, &ApplicationError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
			Details:    apiErr.Details,
		}
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		c.health.ReportSuccess(latency)
		return zero, nil
	}

	var result T
	if err := json.Unmarshal(respBody, &result); err != nil {
		c.health.ReportFailure()
		return zero, &NetworkError{
			Err:        fmt.Errorf("could not parse response: %w", err),
			StatusCode: resp.StatusCode,
			RawBody:    string(respBody),
		}
	}

	c.health.ReportSuccess(latency)
	return result, nil
}
