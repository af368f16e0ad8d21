package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-orders-appointments-api/internal/idempotency"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
)

// Processor applies ingestion messages exactly once per message id.
type Processor struct {
	idempStore *idempotency.Store
	sink       ingest.Sink
}

// NewProcessor creates a worker processor writing through sink.
func NewProcessor(idempStore *idempotency.Store, sink ingest.Sink) *Processor {
	return &Processor{idempStore: idempStore, sink: sink}
}

// Handle processes an SQS batch. Messages that should be redelivered are reported as
// batch item failures; the rest of the batch is acknowledged.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		out, err := p.processMessage(ctx, rec)
		if err != nil {
			log.Printf("[worker] message=%s %s: %v", rec.MessageId, out, err)
		}
		if out == outcomeRetry {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) (outcome, error) {
	var msg ingest.Message
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return outcomeRejected, fmt.Errorf("invalid message body: %w", err)
	}
	key := msg.ID
	if key == "" {
		key = rec.MessageId
	}

	log.Printf("[worker] received key=%s kind=%s ref=%s", key, msg.Kind, msg.EntityRef())

	created, err := p.idempStore.CreateIfNotExists(ctx, key, msg.EntityRef())
	if err != nil {
		return outcomeRetry, fmt.Errorf("claim key: %w", err)
	}
	if !created {
		existing, err := p.idempStore.Get(ctx, key)
		if err != nil {
			return outcomeRetry, fmt.Errorf("read key: %w", err)
		}
		if existing != nil && existing.Status == idempotency.StatusDone {
			log.Printf("[worker] duplicate delivery key=%s", key)
			return outcomeDuplicate, nil
		}
		// IN_PROGRESS from a crashed attempt or FAILED: writes are upserts, so apply again
		attempt := 2
		if existing != nil {
			attempt = existing.Attempts + 1
		}
		if err := p.idempStore.Retry(ctx, key, attempt); err != nil {
			return outcomeRetry, fmt.Errorf("retry key: %w", err)
		}
	}

	if err := ingest.Apply(ctx, p.sink, msg); err != nil {
		if markErr := p.idempStore.MarkFailed(ctx, key, err.Error()); markErr != nil {
			log.Printf("[worker] mark failed key=%s: %v", key, markErr)
		}
		if errors.Is(err, ingest.ErrInvalidEntity) || errors.Is(err, ingest.ErrUnknownKind) {
			return outcomeRejected, err
		}
		return outcomeRetry, err
	}

	if err := p.idempStore.MarkDone(ctx, key); err != nil {
		// the write landed; a redelivery will re-apply the same upsert
		return outcomeRetry, fmt.Errorf("mark done: %w", err)
	}
	log.Printf("[worker] applied key=%s ref=%s", key, msg.EntityRef())
	return outcomeApplied, nil
}
