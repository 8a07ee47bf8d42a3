package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecode           = errors.New("malformed response body")
	ErrCircuitOpen      = errors.New("circuit breaker open")
)

// CallRecorder receives one observation per outbound provider call.
type CallRecorder interface {
	RecordProviderCall(ctx context.Context, provider string, success bool)
}

// Client issues single-attempt JSON GET requests against one upstream provider.
type Client struct {
	name     string
	http     *resty.Client
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	recorder CallRecorder
}

type Option func(*Client)

func WithRecorder(r CallRecorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

func WithTelemetry(tele *telemetry.Telemetry) Option {
	return func(c *Client) {
		c.tele = tele
	}
}

func New(name string, cfg config.ProviderConfig, providers config.ProvidersConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	if providers.Timeout > 0 {
		rc.SetTimeout(time.Duration(providers.Timeout) * time.Second)
	}

	c := &Client{
		name:   name,
		http:   rc,
		logger: logger.With(zap.String("provider", name)),
	}

	if providers.Breaker.Enabled {
		c.breaker = newBreaker(name, providers.Breaker)
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug("Provider response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("latency", resp.Time()),
			zap.Int("body_size", len(resp.Body())))
		return nil
	})

	return c
}

func newBreaker(name string, cfg config.BreakerConfig) *gobreaker.CircuitBreaker {
	failures := uint32(cfg.Failures)
	if failures == 0 {
		failures = 5
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.OpenTimeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON performs one GET request and decodes a 2xx JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, params map[string]string, out interface{}) error {
	ctx, span := c.tele.GetTracer().Start(ctx, c.name+".GetJSON")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", c.name),
		attribute.String("path", path),
	)

	body, err := c.execute(ctx, path, params)
	if err == nil {
		if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
			err = fmt.Errorf("%w: %v", ErrDecode, decodeErr)
		}
	}

	if c.recorder != nil {
		c.recorder.RecordProviderCall(ctx, c.name, err == nil)
	}

	span.SetAttributes(attribute.Bool("success", err == nil))
	if err != nil {
		c.tele.RecordError(ctx, err, map[string]interface{}{"provider": c.name})
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}

	return nil
}

func (c *Client) execute(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	call := func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(path)
		if err != nil {
			return nil, err
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
		}
		return resp.Body(), nil
	}

	if c.breaker == nil {
		result, err := call()
		if err != nil {
			return nil, err
		}
		return result.([]byte), nil
	}

	result, err := c.breaker.Execute(call)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	return result.([]byte), nil
}
