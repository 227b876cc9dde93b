// Package transport posts JSON bodies to Adyen and hands back the raw
// response. Interpreting the body is left to the caller.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/yourorg/adyen-gateway/internal/transport/circuitbreaker"
)

const defaultTimeout = 30 * time.Second

// Request is a single POST to Adyen.
type Request struct {
	URL    string
	Body   []byte
	Header http.Header
}

// HTTPError is returned for non-2xx responses. Body holds the response body,
// which Adyen fills with a structured JSON error.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("transport: received HTTP %d", e.StatusCode)
}

// Client posts requests over HTTP.
type Client struct {
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of any
// client passed to WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCircuitBreaker guards every endpoint with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Post sends req and returns the response body. A non-2xx status yields an
// *HTTPError carrying the body; network failures are returned wrapped.
func (c *Client) Post(ctx context.Context, req Request) ([]byte, error) {
	ctx, span := otel.Tracer("transport").Start(ctx, "transport.Post")
	defer span.End()
	span.SetAttributes(attribute.String("http.url", req.URL))

	if c.breaker != nil && !c.breaker.AllowRequest(req.URL) {
		span.SetStatus(codes.Error, circuitbreaker.ErrOpen.Error())
		return nil, fmt.Errorf("transport: %s: %w", req.URL, circuitbreaker.ErrOpen)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create http request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recordFailure(req.URL)
		span.RecordError(err)
		span.SetStatus(codes.Error, "http client error")
		c.logger.Warn("adyen request failed", zap.String("url", req.URL), zap.Error(err))
		return nil, fmt.Errorf("transport: http client error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure(req.URL)
		return nil, fmt.Errorf("transport: failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("adyen response",
		zap.String("url", req.URL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure(req.URL)
	} else {
		c.recordSuccess(req.URL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func (c *Client) recordFailure(key string) {
	if c.breaker != nil {
		c.breaker.RecordFailure(key)
	}
}

func (c *Client) recordSuccess(key string) {
	if c.breaker != nil {
		c.breaker.RecordSuccess(key)
	}
}
