package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
	"github.com/imrishuroy/go-orders-appointments-api/internal/metrics"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// ErrInvalidFilter is returned when query parameters do not map to a single access pattern.
var ErrInvalidFilter = errors.New("invalid order filter")

// Store encapsulates read operations on the orders table.
type Store struct {
	table    *ddb.Table
	validate *validatorv10.Validate
	cache    cache.JSONCache
	recorder metrics.Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithCache enables the read-through cache for Get.
func WithCache(c cache.JSONCache) Option {
	return func(s *Store) { s.cache = c }
}

// WithRecorder reports every store operation to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string, opts ...Option) *Store {
	s := &Store{
		table:    ddb.NewTable(client, tableName),
		validate: validation.New(),
		cache:    cache.Nop{},
		recorder: metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List dispatches a filter to the matching access pattern.
func (s *Store) List(ctx context.Context, f Filter) ([]Order, error) {
	switch {
	case f.CustomerEmail != "" && f.Status != "":
		return nil, fmt.Errorf("%w: customerEmail and status cannot be combined", ErrInvalidFilter)
	case f.CustomerEmail != "":
		return s.ListByCustomerEmail(ctx, f.CustomerEmail)
	case f.Status != "":
		return s.ListByStatus(ctx, f.Status)
	default:
		return s.ListAll(ctx)
	}
}

// ListAll returns every order, newest first.
func (s *Store) ListAll(ctx context.Context) ([]Order, error) {
	return s.list(ctx, "orders.list_all", func() ([]ddb.Record, error) {
		return s.table.ScanWithPrefix(ctx, ddb.KeyPrefix(ddb.EntityOrder))
	})
}

// ListByCustomerEmail returns the orders placed by one customer, newest first.
func (s *Store) ListByCustomerEmail(ctx context.Context, email string) ([]Order, error) {
	return s.list(ctx, "orders.list_by_customer_email", func() ([]ddb.Record, error) {
		return s.table.QueryIndex(ctx, CustomerEmailIndex, ddb.KeyCondition{Attr: "customerEmail", Value: email})
	})
}

// ListByStatus returns the orders in one status, newest first.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]Order, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, status)
	}
	return s.list(ctx, "orders.list_by_status", func() ([]ddb.Record, error) {
		return s.table.QueryIndex(ctx, StatusIndex, ddb.KeyCondition{Attr: "status", Value: status})
	})
}

// CacheKey is the cache key of the order with the given id.
func CacheKey(id string) string { return "order:" + id }

// Get fetches an order by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	cacheKey := CacheKey(id)
	var cached Order
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		log.Printf("[orders] cache read %s: %v", cacheKey, err)
	} else if hit {
		return &cached, nil
	}

	var out *Order
	err := metrics.Observe(ctx, s.recorder, "orders.get", func() error {
		rec, err := s.table.GetByKey(ctx, ddb.EntityKey(ddb.EntityOrder, id))
		if err != nil || rec == nil {
			return err
		}
		r, err := ddb.Decode[Record](rec, s.validate)
		if err != nil {
			return err
		}
		o := FromRecord(r)
		out = &o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if out != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, out); err != nil {
			log.Printf("[orders] cache write %s: %v", cacheKey, err)
		}
	}
	return out, nil
}

// ValidStatus reports whether status is a known order status.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s *Store) list(ctx context.Context, op string, read func() ([]ddb.Record, error)) ([]Order, error) {
	var out []Order
	err := metrics.Observe(ctx, s.recorder, op, func() error {
		recs, err := read()
		if err != nil {
			return err
		}
		decoded, err := ddb.DecodeAll[Record](recs, s.validate)
		if err != nil {
			return err
		}
		out = make([]Order, 0, len(decoded))
		for _, r := range decoded {
			out = append(out, FromRecord(r))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sortNewestFirst(out)
	return out, nil
}

// sortNewestFirst orders by createdAt descending; ties keep their read order.
func sortNewestFirst(orders []Order) {
	created := make([]time.Time, len(orders))
	idx := make([]int, len(orders))
	for i, o := range orders {
		// decoded records carry a valid rfc3339 createdAt
		created[i], _ = validation.ParseTimestamp(o.CreatedAt)
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int { return created[j].Compare(created[i]) })
	sorted := make([]Order, len(orders))
	for k, i := range idx {
		sorted[k] = orders[i]
	}
	copy(orders, sorted)
}
