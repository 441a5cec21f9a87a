// internal/clients/ils_client.go
package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var (
	ErrNotFound    = errors.New("ils: item not found")
	ErrRateLimited = errors.New("ils: rate limit exceeded")
)

const maxPayloadBytes = 8 << 20

// Payload is a raw availability response from the ILS.
type Payload struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Fetcher retrieves the raw availability payload for a catalog key.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (*Payload, error)
}

// ILSClientConfig configures an ILSClient.
type ILSClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second; zero disables limiting
	Burst     int
}

// ILSClient fetches availability from the ILS web service. It does not retry.
type ILSClient struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *slog.Logger
	tracer      trace.Tracer
	latency     metric.Float64Histogram
}

func NewILSClient(cfg ILSClientConfig, logger *slog.Logger) *ILSClient {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	latency, err := otel.Meter("libranexus/clients").Float64Histogram(
		"ils.fetch.duration",
		metric.WithDescription("ILS availability request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &ILSClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: limiter,
		log:         logger.With("adapter", "ils"),
		tracer:      otel.Tracer("libranexus/clients"),
		latency:     latency,
	}
}

// Fetch requests the availability document for key.
func (c *ILSClient) Fetch(ctx context.Context, key string) (*Payload, error) {
	ctx, span := c.tracer.Start(ctx, "ils.fetch",
		trace.WithAttributes(attribute.String("catalog.key", key)),
	)
	defer span.End()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}

	reqURL := fmt.Sprintf("%s/items/%s", c.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ils: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/xml;q=0.9")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.record(ctx, start, resp)
	if err != nil {
		span.RecordError(err)
		c.log.ErrorContext(ctx, "ils request failed", slog.String("key", key), slog.String("error", err.Error()))
		return nil, fmt.Errorf("ils: request failed: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ils: unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("ils: read body: %w", err)
	}

	c.log.DebugContext(ctx, "ils response",
		slog.String("key", key),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &Payload{
		Key:         key,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (c *ILSClient) record(ctx context.Context, start time.Time, resp *http.Response) {
	if c.latency == nil {
		return
	}
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.latency.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.Int("http.status_code", status)),
	)
}
