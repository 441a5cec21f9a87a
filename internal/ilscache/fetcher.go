// internal/ilscache/fetcher.go
package ilscache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libranexus/internal/clients"
	"libranexus/internal/ils"
)

// CachingFetcher serves payloads younger than ttl from the store and fetches
// the rest. Only payloads that decode cleanly are stored. Store failures are
// logged and bypassed.
type CachingFetcher struct {
	next  clients.Fetcher
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachingFetcher(next clients.Fetcher, store Store, ttl time.Duration, logger *slog.Logger) *CachingFetcher {
	return &CachingFetcher{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   logger.With("component", "ilscache"),
	}
}

func (f *CachingFetcher) Fetch(ctx context.Context, key string) (*clients.Payload, error) {
	p, err := f.store.Get(ctx, key, f.ttl)
	if err == nil {
		f.log.DebugContext(ctx, "cache hit", slog.String("key", key))
		return p, nil
	}
	if !errors.Is(err, ErrMiss) {
		f.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	p, err = f.next.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := decodeCheck(p); err != nil {
		f.log.WarnContext(ctx, "not caching undecodable payload", slog.String("key", key), slog.String("error", err.Error()))
		return p, nil
	}
	if err := f.store.Put(ctx, p); err != nil {
		f.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return p, nil
}

// decodeCheck returns the first envelope or holding decode error in p.
func decodeCheck(p *clients.Payload) error {
	item := ils.Decode(p.Key, p.Body, ils.DetectFormat(p.ContentType, p.Body))
	if item.Failed() {
		return item.Err
	}
	if errs := item.HoldingErrors(); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
