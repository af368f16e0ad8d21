package orders

import (
	"reflect"
	"testing"
)

func TestRecordRoundTrip(t *testing.T) {
	o := Order{
		ID:                "3",
		CustomerName:      "Ana Rodríguez",
		CustomerEmail:     "ana.rodriguez@email.com",
		Items:             []Item{{ID: "5", Name: "iPhone 15 Pro", Quantity: 1, Price: 1199.99}},
		Total:             1239.98,
		Status:            StatusShipped,
		CreatedAt:         "2025-07-13T11:20:00.000-03:00",
		UpdatedAt:         "2025-07-17T16:30:00.000-03:00",
		EstimatedDelivery: "2025-07-19T00:00:00.000-03:00",
		TrackingNumber:    "TRK456789321",
	}
	r := NewRecord(o)
	if r.PK != "ORDER#3" || r.SK != "ORDER#3" {
		t.Fatalf("unexpected keys %s/%s", r.PK, r.SK)
	}
	if r.GSI1PK != o.CustomerEmail || r.GSI1SK != "shipped#2025-07-13T11:20:00.000-03:00" {
		t.Fatalf("unexpected projections %s/%s", r.GSI1PK, r.GSI1SK)
	}
	if got := FromRecord(r); !reflect.DeepEqual(got, o) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, o)
	}
}

func TestFromRecord_NilItems(t *testing.T) {
	if got := FromRecord(Record{ID: "1"}); got.Items == nil {
		t.Fatal("items must render as an empty list")
	}
}
