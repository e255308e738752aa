package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// OutboxEvent is a domain event staged for publishing. It is written in
// the same database transaction as the aggregate change it describes.
type OutboxEvent struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// outboxEventsFrom converts drained domain events into outbox rows.
func outboxEventsFrom(idGen IDGenerator, aggregateType string, events []domain.Event) ([]*OutboxEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}

	rows := make([]*OutboxEvent, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &OutboxEvent{
			ID:            idGen.Generate(),
			AggregateType: aggregateType,
			AggregateID:   e.AggregateID(),
			EventType:     e.Type(),
			Payload:       payload,
			CreatedAt:     e.OccurredAt(),
		})
	}

	return rows, nil
}

// stageOutbox drains the events and writes them as outbox rows inside
// the current transaction.
func stageOutbox(ctx context.Context, tx Tx, outboxRepo OutboxRepository, idGen IDGenerator, aggregateType string, events []domain.Event) error {
	rows, err := outboxEventsFrom(idGen, aggregateType, events)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return outboxRepo.CreateBatch(ctx, tx, rows)
}
