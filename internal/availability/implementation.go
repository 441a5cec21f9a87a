// internal/availability/implementation.go
package availability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libranexus/internal/clients"
	"libranexus/internal/ils"
)

// service implements the Service interface.
type service struct {
	fetcher clients.Fetcher
	later   LaterLibrary
	metrics *Metrics
	log     *slog.Logger
	tracer  trace.Tracer
}

// NewService creates a new availability service instance.
func NewService(fetcher clients.Fetcher, later LaterLibrary, metrics *Metrics, logger *slog.Logger) Service {
	if later == nil {
		later = NoLaterLibraries
	}
	return &service{
		fetcher: fetcher,
		later:   later,
		metrics: metrics,
		log:     logger.With("component", "availability"),
		tracer:  otel.Tracer("libranexus/availability"),
	}
}

func (s *service) Lookup(ctx context.Context, doc Document) (*Availability, error) {
	if doc == nil {
		panic("availability: Lookup called without a document")
	}
	key := doc.Key()

	ctx, span := s.tracer.Start(ctx, "availability.lookup",
		trace.WithAttributes(attribute.String("catalog.key", key)),
	)
	defer span.End()

	var item *ils.CatalogItem
	payload, err := s.fetcher.Fetch(ctx, key)
	switch {
	case err != nil && ctx.Err() != nil:
		s.metrics.Canceled()
		return nil, ctx.Err()
	case err != nil:
		span.RecordError(err)
		s.log.WarnContext(ctx, "ils lookup failed", slog.String("key", key), slog.String("error", err.Error()))
		item = ils.NewErrorItem(key, err)
	default:
		format := ils.DetectFormat(payload.ContentType, payload.Body)
		item = ils.Decode(key, payload.Body, format)
		if item.Failed() {
			span.RecordError(item.Err)
			s.log.WarnContext(ctx, "ils payload rejected",
				slog.String("key", key),
				slog.String("format", format.String()),
				slog.String("error", item.Err.Error()),
			)
		}
		for _, herr := range item.HoldingErrors() {
			span.RecordError(herr)
			s.log.WarnContext(ctx, "ils holding rejected",
				slog.String("key", key),
				slog.String("format", format.String()),
				slog.String("error", herr.Error()),
			)
		}
	}

	a := New(item, doc, WithLaterLibrary(s.later), WithLogger(s.log))
	s.metrics.Observe(a)

	span.SetAttributes(
		attribute.Int("holdings.count", len(a.Holdings())),
		attribute.Int("lost.libraries", len(a.Lost())),
		attribute.Bool("online_only", a.OnlineOnly()),
	)
	return a, nil
}
