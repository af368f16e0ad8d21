// Package seed loads the sample dataset into an ingest.Sink.
package seed

import (
	"context"
	"log"

	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
)

// Result counts per-record outcomes of a run.
type Result struct {
	Written int
	Failed  int
}

// Run writes every sample order, then every sample appointment. A failed record is
// logged and counted; the run continues. Only context cancellation stops it early.
func Run(ctx context.Context, sink ingest.Sink) (Result, error) {
	var res Result
	count := func(kind, id string, err error) {
		if err != nil {
			res.Failed++
			log.Printf("[seed] %s %s failed: %v", kind, id, err)
			return
		}
		res.Written++
		log.Printf("[seed] %s %s seeded", kind, id)
	}

	for _, o := range Orders() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		count("order", o.ID, sink.PutOrder(ctx, o))
	}
	for _, a := range Appointments() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		count("appointment", a.ID, sink.PutAppointment(ctx, a))
	}
	return res, nil
}
