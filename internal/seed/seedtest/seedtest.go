// Package seedtest builds in-memory tables loaded with the sample dataset.
package seedtest

import (
	"context"
	"testing"

	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb/ddbtest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
	"github.com/imrishuroy/go-orders-appointments-api/internal/seed"
)

// Table names used by the fixtures.
const (
	OrdersTable       = "orders"
	AppointmentsTable = "appointments"
)

// EmptyTables returns a fake with both tables and their indexes defined.
func EmptyTables() *ddbtest.Fake {
	f := ddbtest.New()
	f.CreateTable(OrdersTable, ddb.AttrPK, ddb.AttrSK)
	f.AddIndex(OrdersTable, orders.CustomerEmailIndex, "customerEmail", "")
	f.AddIndex(OrdersTable, orders.StatusIndex, "status", "")
	f.CreateTable(AppointmentsTable, ddb.AttrPK, ddb.AttrSK)
	f.AddIndex(AppointmentsTable, appointments.PatientEmailIndex, "patientEmail", "")
	f.AddIndex(AppointmentsTable, appointments.DoctorDateIndex, "doctorName", "date")
	return f
}

// Tables returns a fake loaded with the sample dataset.
func Tables(t testing.TB) *ddbtest.Fake {
	t.Helper()
	f := EmptyTables()
	res, err := seed.Run(context.Background(), ingest.NewWriter(f, OrdersTable, AppointmentsTable))
	if err != nil || res.Failed > 0 {
		t.Fatalf("seed: %+v %v", res, err)
	}
	return f
}
