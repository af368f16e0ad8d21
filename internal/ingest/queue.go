package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
)

// Sender publishes a message body with string attributes. *aws.Publisher satisfies it.
type Sender interface {
	Send(ctx context.Context, messageBody string, attributes map[string]string) error
}

// QueueSink publishes entities to the ingestion queue instead of writing them.
type QueueSink struct {
	sender Sender
}

// NewQueueSink returns a Sink publishing through sender.
func NewQueueSink(sender Sender) *QueueSink {
	return &QueueSink{sender: sender}
}

// PutOrder publishes o as an order message.
func (q *QueueSink) PutOrder(ctx context.Context, o orders.Order) error {
	return q.publish(ctx, NewOrderMessage(o))
}

// PutAppointment publishes a as an appointment message.
func (q *QueueSink) PutAppointment(ctx context.Context, a appointments.Appointment) error {
	return q.publish(ctx, NewAppointmentMessage(a))
}

func (q *QueueSink) publish(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	attrs := map[string]string{
		"message_id": m.ID,
		"kind":       m.Kind,
		"entity_ref": m.EntityRef(),
	}
	if err := q.sender.Send(ctx, string(body), attrs); err != nil {
		return fmt.Errorf("publish %s: %w", m.EntityRef(), err)
	}
	return nil
}
