package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/config"
	"github.com/imrishuroy/go-orders-appointments-api/internal/idempotency"
	"github.com/imrishuroy/go-orders-appointments-api/internal/ingest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/seed"
)

// writerOptions invalidates the API's lookup cache when Redis is configured. Without it
// a cached record is served until CACHE_TTL_SECONDS elapses.
func writerOptions(env config.Env) []ingest.WriterOption {
	if env.RedisAddr == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := cache.Connect(ctx, env.RedisAddr, env.CacheTTL)
	if err != nil {
		log.Printf("[worker] cache invalidation disabled: %v", err)
		return nil
	}
	return []ingest.WriterOption{ingest.WithCacheInvalidation(c)}
}

func main() {
	env, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if env.IdempotencyTable == "" {
		log.Fatalf("missing env IDEMPOTENCY_TABLE")
	}

	clients, err := aws.NewAWSClients(context.Background(), env.AWS())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	p := NewProcessor(
		idempotency.NewStore(clients.DynamoDB, env.IdempotencyTable, env.IdempotencyTTL),
		ingest.NewWriter(clients.DynamoDB, env.OrdersTable, env.AppointmentsTable, writerOptions(env)...),
	)

	// If RUN_LOCAL=true, process a single simulated SQS message and exit.
	if env.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			b, _ := json.Marshal(ingest.NewOrderMessage(seed.Orders()[0]))
			testBody = string(b)
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{MessageId: "local-1", Body: testBody},
			},
		}
		resp, err := p.Handle(context.Background(), event)
		if err != nil || len(resp.BatchItemFailures) > 0 {
			log.Fatalf("local handler error: %v %+v", err, resp.BatchItemFailures)
		}
		return
	}

	lambda.Start(p.Handle)
}
