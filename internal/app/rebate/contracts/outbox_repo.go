package contracts

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
)

// OutboxEvent is a domain event enriched for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// OutboxRepository builds outbox mutations for the Spanner backend.
type OutboxRepository interface {
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent assigns an event id and pending status.
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent

	// ListByAggregate returns the events of one aggregate, oldest first.
	ListByAggregate(ctx context.Context, aggregateID string) ([]*OutboxEvent, error)
}
