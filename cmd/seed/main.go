package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/config"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/seed"
)

func main() {
	viaQueue := flag.Bool("queue", false, "publish the sample data to INGEST_QUEUE_URL instead of writing the tables directly")
	flag.Parse()

	env, err := config.Load()
	if err != nil {
		log.Fatalf("[seed] failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := aws.NewAWSClients(ctx, env.AWS())
	if err != nil {
		log.Fatalf("[seed] failed to init aws clients: %v", err)
	}

	var sink ingest.Sink
	if *viaQueue {
		if env.IngestQueueURL == "" {
			log.Fatalf("[seed] -queue requires INGEST_QUEUE_URL")
		}
		log.Printf("[seed] publishing to %s", env.IngestQueueURL)
		sink = ingest.NewQueueSink(aws.NewPublisher(clients.SQS, env.IngestQueueURL))
	} else {
		log.Printf("[seed] writing to tables %s and %s", env.OrdersTable, env.AppointmentsTable)
		var opts []ingest.WriterOption
		if env.RedisAddr != "" {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			c, err := cache.Connect(pingCtx, env.RedisAddr, env.CacheTTL)
			cancel()
			if err != nil {
				log.Printf("[seed] cache invalidation disabled: %v", err)
			} else {
				opts = append(opts, ingest.WithCacheInvalidation(c))
			}
		}
		sink = ingest.NewWriter(clients.DynamoDB, env.OrdersTable, env.AppointmentsTable, opts...)
	}

	res, err := seed.Run(ctx, sink)
	log.Printf("[seed] done: %d written, %d failed", res.Written, res.Failed)
	if err != nil {
		log.Fatalf("[seed] interrupted: %v", err)
	}
	if res.Failed > 0 {
		os.Exit(1)
	}
}
