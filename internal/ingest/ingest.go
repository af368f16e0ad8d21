// Package ingest writes orders and appointments into storage, either directly or through
// the ingestion queue consumed by cmd/worker.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// Message kinds
const (
	KindOrder       = "order"
	KindAppointment = "appointment"
)

var (
	// ErrInvalidEntity is returned for entities that would produce a malformed record.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrUnknownKind is returned for messages carrying neither an order nor an appointment.
	ErrUnknownKind = errors.New("unknown message kind")
)

// Sink accepts entities for storage.
type Sink interface {
	PutOrder(ctx context.Context, o orders.Order) error
	PutAppointment(ctx context.Context, a appointments.Appointment) error
}

// Message is the ingestion queue payload. ID is unique per publish and is the
// de-duplication key on the consumer side.
type Message struct {
	ID          string                    `json:"id"`
	Kind        string                    `json:"kind"`
	Order       *orders.Order             `json:"order,omitempty"`
	Appointment *appointments.Appointment `json:"appointment,omitempty"`
}

// NewOrderMessage wraps o in a message with a fresh id.
func NewOrderMessage(o orders.Order) Message {
	return Message{ID: uuid.NewString(), Kind: KindOrder, Order: &o}
}

// NewAppointmentMessage wraps a in a message with a fresh id.
func NewAppointmentMessage(a appointments.Appointment) Message {
	return Message{ID: uuid.NewString(), Kind: KindAppointment, Appointment: &a}
}

// EntityRef names the storage key the message writes, e.g. ORDER#3.
func (m Message) EntityRef() string {
	switch {
	case m.Kind == KindOrder && m.Order != nil:
		return ddb.EntityKey(ddb.EntityOrder, m.Order.ID).PK
	case m.Kind == KindAppointment && m.Appointment != nil:
		return ddb.EntityKey(ddb.EntityAppointment, m.Appointment.ID).PK
	}
	return ""
}

// Apply hands the message's entity to sink.
func Apply(ctx context.Context, sink Sink, m Message) error {
	switch {
	case m.Kind == KindOrder && m.Order != nil:
		return sink.PutOrder(ctx, *m.Order)
	case m.Kind == KindAppointment && m.Appointment != nil:
		return sink.PutAppointment(ctx, *m.Appointment)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
}

// Writer stores entities as DynamoDB records. Writes are upserts by key.
type Writer struct {
	orders       *ddb.Table
	appointments *ddb.Table
	validate     *validatorv10.Validate
	cache        cache.JSONCache
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCacheInvalidation drops the cached copy of every entity the Writer stores, so
// lookups served through the same cache see the write immediately.
func WithCacheInvalidation(c cache.JSONCache) WriterOption {
	return func(w *Writer) { w.cache = c }
}

// NewWriter returns a Writer for the given order and appointment tables.
func NewWriter(client aws.DynamoDBAPI, ordersTable, appointmentsTable string, opts ...WriterOption) *Writer {
	w := &Writer{
		orders:       ddb.NewTable(client, ordersTable),
		appointments: ddb.NewTable(client, appointmentsTable),
		validate:     validation.New(),
		cache:        cache.Nop{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PutOrder validates o and stores it with its index projections.
func (w *Writer) PutOrder(ctx context.Context, o orders.Order) error {
	if err := w.validate.Struct(o); err != nil {
		return fmt.Errorf("%w: order %q: %v", ErrInvalidEntity, o.ID, err)
	}
	item, err := ddb.Encode(orders.NewRecord(o))
	if err != nil {
		return err
	}
	if err := w.orders.Put(ctx, item); err != nil {
		return fmt.Errorf("put order %s: %w", o.ID, err)
	}
	w.invalidate(ctx, orders.CacheKey(o.ID))
	return nil
}

// PutAppointment validates a and stores it with its index projections.
func (w *Writer) PutAppointment(ctx context.Context, a appointments.Appointment) error {
	if err := w.validate.Struct(a); err != nil {
		return fmt.Errorf("%w: appointment %q: %v", ErrInvalidEntity, a.ID, err)
	}
	item, err := ddb.Encode(appointments.NewRecord(a))
	if err != nil {
		return err
	}
	if err := w.appointments.Put(ctx, item); err != nil {
		return fmt.Errorf("put appointment %s: %w", a.ID, err)
	}
	w.invalidate(ctx, appointments.CacheKey(a.ID))
	return nil
}

// invalidate is best effort: the record is already stored, and a stale entry
// still expires with the cache TTL.
func (w *Writer) invalidate(ctx context.Context, key string) {
	if err := w.cache.Delete(ctx, key); err != nil {
		log.Printf("[ingest] cache invalidate %s: %v", key, err)
	}
}
