package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/config"
	"github.com/imrishuroy/go-orders-appointments-api/internal/handlers"
	"github.com/imrishuroy/go-orders-appointments-api/internal/metrics"
)

// newCache connects to Redis when configured. An unreachable Redis disables caching
// rather than failing start-up.
func newCache(ctx context.Context, env config.Env) cache.JSONCache {
	if env.RedisAddr == "" {
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	c, err := cache.Connect(pingCtx, env.RedisAddr, env.CacheTTL)
	if err != nil {
		log.Printf("[api] caching disabled: %v", err)
		return nil
	}
	log.Printf("[api] caching lookups in redis %s (ttl %s)", env.RedisAddr, env.CacheTTL)
	return c
}

func main() {
	ctx := context.Background()

	env, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clients, err := aws.NewAWSClients(ctx, env.AWS())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}
	log.Printf("[api] region %s, tables %s and %s", clients.Region, env.OrdersTable, env.AppointmentsTable)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := metrics.NewPrometheus(reg)

	recorders := metrics.Multi{prom}
	if env.MetricsNamespace != "" {
		recorders = append(recorders, metrics.NewCloudWatch(clients.CloudWatch, env.MetricsNamespace))
	}

	cfg := handlers.Config{
		DynamoDBClient:    clients.DynamoDB,
		OrdersTable:       env.OrdersTable,
		AppointmentsTable: env.AppointmentsTable,
		Cache:             newCache(ctx, env),
		Prometheus:        prom,
		Recorder:          recorders,
		Development:       env.Development(),
		AccessLog:         env.RunLocal,
	}

	r := handlers.NewRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if env.RunLocal {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		log.Printf("[api] running local server on %s", env.HTTPAddr)
		if err := r.Run(env.HTTPAddr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
