package orders_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
	"github.com/imrishuroy/go-orders-appointments-api/internal/seed/seedtest"
)

func ids(list []orders.Order) string {
	out := make([]string, 0, len(list))
	for _, o := range list {
		out = append(out, o.ID)
	}
	return strings.Join(out, ",")
}

func TestListAll_NewestFirst(t *testing.T) {
	s := orders.NewStore(seedtest.Tables(t), seedtest.OrdersTable)

	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(got) != "6,7,1,2,3,4,5" {
		t.Fatalf("unexpected order %s", ids(got))
	}
}

func TestListByStatus(t *testing.T) {
	s := orders.NewStore(seedtest.Tables(t), seedtest.OrdersTable)
	ctx := context.Background()

	got, err := s.ListByStatus(ctx, orders.StatusPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(got) != "6,1" {
		t.Fatalf("pending: got %s", ids(got))
	}

	got, err = s.ListByStatus(ctx, orders.StatusProcessing)
	if err != nil || ids(got) != "7,2" {
		t.Fatalf("processing: got %s, %v", ids(got), err)
	}

	if _, err := s.ListByStatus(ctx, "lost"); !errors.Is(err, orders.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestListByCustomerEmail(t *testing.T) {
	s := orders.NewStore(seedtest.Tables(t), seedtest.OrdersTable)
	ctx := context.Background()

	got, err := s.ListByCustomerEmail(ctx, "ana.rodriguez@email.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(got) != "3" {
		t.Fatalf("got %s", ids(got))
	}

	got, err = s.ListByCustomerEmail(ctx, "nobody@email.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

// Tables whose orders were numbered per user carry userOrderNumber and a GSI1PK of
// USER_ORDER_n. Reads ignore both: the email index is keyed on customerEmail.
func TestReads_IgnoreUserOrderNumbers(t *testing.T) {
	f := seedtest.Tables(t)
	item := f.Item(seedtest.OrdersTable, "ORDER#3", "ORDER#3")
	migrated := make(map[string]types.AttributeValue, len(item)+1)
	for k, v := range item {
		migrated[k] = v
	}
	migrated["userOrderNumber"] = &types.AttributeValueMemberN{Value: "3"}
	migrated["GSI1PK"] = &types.AttributeValueMemberS{Value: "USER_ORDER_3"}
	f.Put(seedtest.OrdersTable, migrated)

	s := orders.NewStore(f, seedtest.OrdersTable)
	ctx := context.Background()

	got, err := s.ListByCustomerEmail(ctx, "ana.rodriguez@email.com")
	if err != nil || ids(got) != "3" {
		t.Fatalf("expected order 3 by email, got %q %v", ids(got), err)
	}
	o, err := s.Get(ctx, "3")
	if err != nil || o == nil || o.CustomerEmail != "ana.rodriguez@email.com" {
		t.Fatalf("expected order 3, got %+v %v", o, err)
	}
	all, err := s.ListAll(ctx)
	if err != nil || len(all) != 7 {
		t.Fatalf("expected all 7 orders, got %d %v", len(all), err)
	}
}

func TestList_Dispatch(t *testing.T) {
	f := seedtest.Tables(t)
	s := orders.NewStore(f, seedtest.OrdersTable)
	ctx := context.Background()

	if _, err := s.List(ctx, orders.Filter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Calls("Scan") != 1 || f.Calls("Query") != 0 {
		t.Fatalf("no filter should scan once, saw scan=%d query=%d", f.Calls("Scan"), f.Calls("Query"))
	}

	got, err := s.List(ctx, orders.Filter{Status: "shipped"})
	if err != nil || ids(got) != "3" {
		t.Fatalf("status filter: got %s, %v", ids(got), err)
	}
	got, err = s.List(ctx, orders.Filter{CustomerEmail: "carlos.mendoza@email.com"})
	if err != nil || ids(got) != "2" {
		t.Fatalf("email filter: got %s, %v", ids(got), err)
	}
	if f.Calls("Scan") != 1 || f.Calls("Query") != 2 {
		t.Fatalf("filters must use indexes, saw scan=%d query=%d", f.Calls("Scan"), f.Calls("Query"))
	}

	_, err = s.List(ctx, orders.Filter{Status: "pending", CustomerEmail: "maria.gonzalez@email.com"})
	if !errors.Is(err, orders.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestGet(t *testing.T) {
	s := orders.NewStore(seedtest.Tables(t), seedtest.OrdersTable)
	ctx := context.Background()

	o, err := s.Get(ctx, "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o == nil {
		t.Fatal("expected order 3")
	}
	if o.CustomerName != "Ana Rodríguez" || o.TrackingNumber != "TRK456789321" || len(o.Items) != 2 {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.CreatedAt != "2025-07-13T11:20:00.000-03:00" {
		t.Fatalf("timestamps must be returned as stored, got %q", o.CreatedAt)
	}

	o, err = s.Get(ctx, "999")
	if err != nil || o != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", o, err)
	}
}

func TestTiesKeepReadOrder(t *testing.T) {
	f := seedtest.EmptyTables()
	w := ingest.NewWriter(f, seedtest.OrdersTable, seedtest.AppointmentsTable)
	ctx := context.Background()
	for _, o := range []orders.Order{
		{ID: "a", CreatedAt: "2025-07-15T10:30:00-03:00"},
		{ID: "b", CreatedAt: "2025-07-15T13:30:00Z"}, // same instant as a
		{ID: "c", CreatedAt: "2025-07-15T12:00:00Z"},
	} {
		o.CustomerName, o.CustomerEmail, o.Status, o.UpdatedAt = "X", "x@email.com", orders.StatusPending, o.CreatedAt
		if err := w.PutOrder(ctx, o); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	got, err := orders.NewStore(f, seedtest.OrdersTable).ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids(got) != "a,b,c" {
		t.Fatalf("got %s", ids(got))
	}
}

func TestMalformedRecordFailsRequest(t *testing.T) {
	f := seedtest.Tables(t)
	f.Put(seedtest.OrdersTable, map[string]types.AttributeValue{
		ddb.AttrPK:      &types.AttributeValueMemberS{Value: "ORDER#8"},
		ddb.AttrSK:      &types.AttributeValueMemberS{Value: "ORDER#8"},
		"id":            &types.AttributeValueMemberS{Value: "8"},
		"customerName":  &types.AttributeValueMemberS{Value: "Sin Fecha"},
		"customerEmail": &types.AttributeValueMemberS{Value: "sin.fecha@email.com"},
		"status":        &types.AttributeValueMemberS{Value: "pending"},
		"total":         &types.AttributeValueMemberN{Value: "1"},
		"createdAt":     &types.AttributeValueMemberS{Value: "yesterday"},
		"updatedAt":     &types.AttributeValueMemberS{Value: "2025-07-15T10:30:00.000-03:00"},
	})
	s := orders.NewStore(f, seedtest.OrdersTable)

	if _, err := s.ListAll(context.Background()); !errors.Is(err, ddb.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if _, err := s.Get(context.Background(), "8"); !errors.Is(err, ddb.ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestStoreErrorPropagates(t *testing.T) {
	f := seedtest.Tables(t)
	boom := &types.InternalServerError{}
	f.Fail("Query", boom)
	s := orders.NewStore(f, seedtest.OrdersTable)

	var ise *types.InternalServerError
	if _, err := s.ListByStatus(context.Background(), orders.StatusShipped); !errors.As(err, &ise) {
		t.Fatalf("expected wrapped InternalServerError, got %v", err)
	}
}

func TestGet_ReadThroughCache(t *testing.T) {
	f := seedtest.Tables(t)
	c := cache.NewMemory()
	s := orders.NewStore(f, seedtest.OrdersTable, orders.WithCache(c))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		o, err := s.Get(ctx, "1")
		if err != nil || o == nil || o.ID != "1" {
			t.Fatalf("get #%d: %v %v", i, o, err)
		}
	}
	if f.Calls("GetItem") != 1 {
		t.Fatalf("expected a single store read, got %d", f.Calls("GetItem"))
	}

	// misses are not cached
	_, _ = s.Get(ctx, "999")
	_, _ = s.Get(ctx, "999")
	if f.Calls("GetItem") != 3 || c.Len() != 1 {
		t.Fatalf("unexpected reads=%d keys=%d", f.Calls("GetItem"), c.Len())
	}
}

type brokenCache struct{}

func (brokenCache) GetJSON(context.Context, string, any) (bool, error) {
	return false, errors.New("redis down")
}
func (brokenCache) SetJSON(context.Context, string, any) error { return errors.New("redis down") }
func (brokenCache) Delete(context.Context, string) error        { return errors.New("redis down") }

func TestGet_CacheFaultFallsBack(t *testing.T) {
	s := orders.NewStore(seedtest.Tables(t), seedtest.OrdersTable, orders.WithCache(brokenCache{}))
	o, err := s.Get(context.Background(), "2")
	if err != nil || o == nil || o.ID != "2" {
		t.Fatalf("expected fallback to store, got %v %v", o, err)
	}
}

type recorded struct {
	op      string
	success bool
}

type recorder struct{ seen []recorded }

func (r *recorder) ObserveOperation(_ context.Context, op string, success bool, _ time.Duration) {
	r.seen = append(r.seen, recorded{op, success})
}

func TestRecorderSeesOperations(t *testing.T) {
	f := seedtest.Tables(t)
	rec := &recorder{}
	s := orders.NewStore(f, seedtest.OrdersTable, orders.WithRecorder(rec))
	ctx := context.Background()

	_, _ = s.ListAll(ctx)
	f.Fail("GetItem", errors.New("boom"))
	_, _ = s.Get(ctx, "1")

	want := []recorded{{"orders.list_all", true}, {"orders.get", false}}
	if len(rec.seen) != len(want) {
		t.Fatalf("got %+v", rec.seen)
	}
	for i := range want {
		if rec.seen[i] != want[i] {
			t.Fatalf("got %+v, want %+v", rec.seen, want)
		}
	}
}
