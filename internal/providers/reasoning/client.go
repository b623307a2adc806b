package reasoning

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/resilience"
)

// ErrUpstream is returned when the reasoning service answers with a non-2xx status
var ErrUpstream = errors.New("reasoning service error")

// Config configures the remote client
type Config struct {
	URL          string
	APIKey       string
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client talks to a remote reasoning service
type Client struct {
	resty    *resty.Client
	breaker  *resilience.Breaker
	projects Projects
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewClient creates a reasoning client with retries and a circuit breaker
func NewClient(cfg Config, projects Projects) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = 200 * time.Millisecond
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = 2 * time.Second
	}

	// Retries happen in the transport so resty sees one logical request
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient())
	restyClient.
		SetBaseURL(strings.TrimRight(cfg.URL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "DevOS-Reasoning/1.0").
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if cfg.APIKey != "" {
		restyClient.SetAuthToken(cfg.APIKey)
	}

	c := &Client{
		resty:    restyClient,
		projects: projects,
		logger:   zap.NewNop(),
	}

	c.breaker = resilience.New("reasoning", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A visitor leaving is not a service failure
		IsSuccessful: resilience.IgnoreCanceled,
		OnStateChange: func(name string, from, to resilience.State) {
			c.logger.Warn("breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return c
}

// WithMetrics adds metrics tracking to the client
func (c *Client) WithMetrics(metrics *monitoring.Metrics) *Client {
	c.metrics = metrics
	return c
}

// WithLogger sets the client's logger
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Translate asks the service for a command. Returns "" when nothing matches.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	var resp CommandResponse
	err := c.post(ctx, "translate", "/translate", TranslateRequest{
		Text:     text,
		Commands: Commands,
		Projects: projectIDs(c.projects),
	}, &resp)
	if err != nil {
		return "", err
	}
	return normalizeCommand(resp.Command), nil
}

// Suggest asks the service for the most likely intended command
func (c *Client) Suggest(ctx context.Context, text string) (string, error) {
	var resp CommandResponse
	err := c.post(ctx, "suggest", "/suggest", TranslateRequest{
		Text:     text,
		Commands: Commands,
	}, &resp)
	if err != nil {
		return "", err
	}
	return normalizeSuggestion(resp.Command), nil
}

// DeepDive asks the service for an engineering analysis of a project
func (c *Client) DeepDive(ctx context.Context, projectID string) (string, error) {
	project, ok := c.projects.FindProject(projectID)
	if !ok {
		return projectNotFound, nil
	}

	var resp DeepDiveResponse
	if err := c.post(ctx, "deep_dive", "/deep-dive", DeepDiveRequest{Project: project}, &resp); err != nil {
		return "", err
	}
	if analysis := strings.TrimSpace(resp.Analysis); analysis != "" {
		return analysis, nil
	}
	return deepDiveFailedMsg, nil
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *Client) post(ctx context.Context, op, path string, body, out interface{}) error {
	timer := monitoring.NewTimer(c.metrics, op)

	_, err := resilience.Call(c.breaker, func() (*resty.Response, error) {
		resp, err := c.resty.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(out).
			Post(path)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, fmt.Errorf("%w: %s returned %d", ErrUpstream, path, resp.StatusCode())
		}
		return resp, nil
	})

	if err != nil {
		timer.Stop("error")
		c.logger.Debug("reasoning request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("reasoning %s: %w", op, err)
	}
	timer.Stop("success")
	return nil
}
