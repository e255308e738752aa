package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	pool *pgxpool.Pool
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

const outboxColumns = `id, aggregate_type, aggregate_id, event_type, payload, created_at, published_at`

// Create stages a single outbox event within a transaction.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *usecase.OutboxEvent) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO outbox_events (`+outboxColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID,
		event.AggregateType,
		event.AggregateID,
		event.EventType,
		event.Payload,
		event.CreatedAt,
		event.PublishedAt,
	)

	return err
}

// CreateBatch stages several outbox events in one round trip.
func (r *OutboxRepository) CreateBatch(ctx context.Context, tx usecase.Tx, events []*usecase.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO outbox_events (`+outboxColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			event.ID,
			event.AggregateType,
			event.AggregateID,
			event.EventType,
			event.Payload,
			event.CreatedAt,
			event.PublishedAt,
		)
	}

	return txOf(tx).SendBatch(ctx, batch).Close()
}

// GetUnpublished retrieves staged events that were not published yet,
// oldest first. ULID ids sort in staging order.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+outboxColumns+` FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}

	return collectList(rows, scanOutboxEvent)
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE outbox_events SET published_at = $2 WHERE id = $1`, id, publishedAt)

	return err
}

// DeletePublished deletes published events older than the given time.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM outbox_events
		WHERE published_at IS NOT NULL AND published_at < $1`, before)

	return err
}

func scanOutboxEvent(rows pgx.Rows) (*usecase.OutboxEvent, error) {
	var e usecase.OutboxEvent
	err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType,
		&e.Payload, &e.CreatedAt, &e.PublishedAt)
	if err != nil {
		return nil, err
	}

	return &e, nil
}
