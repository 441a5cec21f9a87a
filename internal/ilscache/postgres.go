// internal/ilscache/postgres.go
package ilscache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"libranexus/internal/clients"
)

const schema = `
	CREATE TABLE IF NOT EXISTS ils_payloads (
		catalog_key  TEXT PRIMARY KEY,
		content_type TEXT NOT NULL DEFAULT '',
		body         BYTEA NOT NULL,
		fetched_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS ils_payloads_fetched_at ON ils_payloads (fetched_at);
`

// PostgresStore keeps payloads in the ils_payloads table.
type PostgresStore struct {
	db     *sql.DB
	tracer trace.Tracer
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		tracer: otel.Tracer("libranexus/ilscache"),
	}
}

// Migrate creates the cache table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create cache schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string, maxAge time.Duration) (*clients.Payload, error) {
	ctx, span := s.tracer.Start(ctx, "ilscache.get",
		trace.WithAttributes(attribute.String("catalog.key", key)),
	)
	defer span.End()

	p := &clients.Payload{Key: key}
	err := s.db.QueryRowContext(ctx, `
		SELECT content_type, body, fetched_at
		FROM ils_payloads
		WHERE catalog_key = $1 AND fetched_at > $2
	`, key, time.Now().UTC().Add(-maxAge)).Scan(&p.ContentType, &p.Body, &p.FetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return nil, ErrMiss
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query payload: %w", err)
	}

	span.SetAttributes(attribute.Bool("cache.hit", true))
	return p, nil
}

// Put upserts the payload, never replacing a newer one.
func (s *PostgresStore) Put(ctx context.Context, payload *clients.Payload) error {
	ctx, span := s.tracer.Start(ctx, "ilscache.put",
		trace.WithAttributes(
			attribute.String("catalog.key", payload.Key),
			attribute.Int("payload.bytes", len(payload.Body)),
		),
	)
	defer span.End()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ils_payloads (catalog_key, content_type, body, fetched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (catalog_key) DO UPDATE
		SET content_type = EXCLUDED.content_type,
		    body = EXCLUDED.body,
		    fetched_at = EXCLUDED.fetched_at
		WHERE ils_payloads.fetched_at < EXCLUDED.fetched_at
	`, payload.Key, payload.ContentType, payload.Body, payload.FetchedAt.UTC())

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
			return fmt.Errorf("save payload: cache table missing, run Migrate: %w", err)
		}
		span.RecordError(err)
		return fmt.Errorf("save payload: %w", err)
	}
	return nil
}

func (s *PostgresStore) Purge(ctx context.Context, maxAge time.Duration) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "ilscache.purge")
	defer span.End()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM ils_payloads WHERE fetched_at <= $1
	`, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("purge payloads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge payloads: %w", err)
	}
	span.SetAttributes(attribute.Int64("purged", n))
	return n, nil
}
