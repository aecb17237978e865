package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/rebate-service/internal/app/rebate/contracts"
	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
	"github.com/light-bringer/rebate-service/internal/models/m_outbox"
	"github.com/light-bringer/rebate-service/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_outbox.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) *OutboxRepo {
	return &OutboxRepo{
		client: client,
		model:  m_outbox.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	payload := spanner.NullJSON{}
	if event.Payload != "" {
		payload = spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: true}
	}

	return r.model.InsertMut(&m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
	})
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// eventColumns selects an outbox row as a contracts.OutboxEvent. The JSON
// payload is read back as a string.
var eventColumns = []string{
	m_outbox.EventID,
	m_outbox.EventType,
	m_outbox.AggregateID,
	fmt.Sprintf("TO_JSON_STRING(%s) AS %s", m_outbox.Payload, m_outbox.Payload),
	m_outbox.Status,
}

// ListByAggregate returns the events of one aggregate in commit order.
func (r *OutboxRepo) ListByAggregate(ctx context.Context, aggregateID string) ([]*contracts.OutboxEvent, error) {
	stmt := query.From(m_outbox.TableName).
		Select(eventColumns...).
		Where(query.Eq(m_outbox.AggregateID, aggregateID)).
		OrderBy(m_outbox.CreatedAt, query.Asc).
		Build()
	return r.queryEvents(ctx, stmt)
}

// ListRecent returns up to limit events, newest first.
func (r *OutboxRepo) ListRecent(ctx context.Context, limit int64) ([]*contracts.OutboxEvent, error) {
	stmt := query.From(m_outbox.TableName).
		Select(eventColumns...).
		OrderBy(m_outbox.CreatedAt, query.Desc).
		Limit(limit).
		Build()
	return r.queryEvents(ctx, stmt)
}

func (r *OutboxRepo) queryEvents(ctx context.Context, stmt spanner.Statement) ([]*contracts.OutboxEvent, error) {
	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []*contracts.OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query outbox events: %w", err)
		}

		var event contracts.OutboxEvent
		var payload spanner.NullString
		if err := row.Columns(&event.EventID, &event.EventType, &event.AggregateID, &payload, &event.Status); err != nil {
			return nil, fmt.Errorf("failed to parse outbox event: %w", err)
		}
		event.Payload = payload.StringVal
		events = append(events, &event)
	}

	return events, nil
}

// RetentionCutoffs bounds how long processed events are kept, by status.
type RetentionCutoffs struct {
	CompletedBefore time.Time
	FailedBefore    time.Time
}

func (c RetentionCutoffs) expired() *query.Builder {
	return query.From(m_outbox.TableName).Where(query.Or(
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusCompleted), query.Lt(m_outbox.ProcessedAt, c.CompletedBefore)),
		query.And(query.Eq(m_outbox.Status, m_outbox.StatusFailed), query.Lt(m_outbox.ProcessedAt, c.FailedBefore)),
	))
}

// CountExpired counts processed events older than the cutoffs, by status.
func (r *OutboxRepo) CountExpired(ctx context.Context, cutoffs RetentionCutoffs) (map[string]int64, error) {
	stmt := cutoffs.expired().
		Select(m_outbox.Status, "COUNT(*)").
		GroupBy(m_outbox.Status).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	counts := make(map[string]int64)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to count expired events: %w", err)
		}
		var status string
		var count int64
		if err := row.Columns(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		counts[status] = count
	}
	return counts, nil
}

// DeleteExpired removes processed events older than the cutoffs and returns
// how many rows were deleted.
func (r *OutboxRepo) DeleteExpired(ctx context.Context, cutoffs RetentionCutoffs) (int64, error) {
	stmt := cutoffs.expired().BuildDelete()

	var deleted int64
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		deleted = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired events: %w", err)
	}
	return deleted, nil
}
