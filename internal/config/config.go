// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
)

// Env holds the configuration values shared by the binaries.
type Env struct {
	Region            string
	EndpointOverride  string
	OrdersTable       string
	AppointmentsTable string
	AppEnv            string
	RunLocal          bool
	HTTPAddr          string
	RedisAddr         string
	CacheTTL          time.Duration
	MetricsNamespace  string
	IngestQueueURL    string
	IdempotencyTable  string
	IdempotencyTTL    time.Duration
}

// AWS returns the SDK settings for aws.NewAWSClients.
func (e Env) AWS() aws.Settings {
	return aws.Settings{Region: e.Region, Endpoint: e.EndpointOverride}
}

// Development reports whether error details may be exposed to clients.
func (e Env) Development() bool {
	return e.AppEnv == "development"
}

// Load reads the environment. Both table names are required.
func Load() (Env, error) {
	cacheTTL, err := seconds("CACHE_TTL_SECONDS", "60")
	if err != nil {
		return Env{}, err
	}
	idemHours, err := strconv.Atoi(get("IDEMPOTENCY_TTL_HOURS", "48"))
	if err != nil || idemHours <= 0 {
		return Env{}, fmt.Errorf("invalid env IDEMPOTENCY_TTL_HOURS: %q", os.Getenv("IDEMPOTENCY_TTL_HOURS"))
	}

	e := Env{
		Region:            get("AWS_REGION", aws.DefaultRegion),
		EndpointOverride:  get("AWS_ENDPOINT_OVERRIDE", ""),
		OrdersTable:       get("ORDERS_TABLE", ""),
		AppointmentsTable: get("APPOINTMENTS_TABLE", ""),
		AppEnv:            get("APP_ENV", "production"),
		RunLocal:          get("RUN_LOCAL", "") == "true",
		HTTPAddr:          get("HTTP_ADDR", ":8080"),
		RedisAddr:         get("REDIS_ADDR", ""),
		CacheTTL:          cacheTTL,
		MetricsNamespace:  get("METRICS_NAMESPACE", ""),
		IngestQueueURL:    get("INGEST_QUEUE_URL", ""),
		IdempotencyTable:  get("IDEMPOTENCY_TABLE", ""),
		IdempotencyTTL:    time.Duration(idemHours) * time.Hour,
	}
	if e.OrdersTable == "" {
		return Env{}, fmt.Errorf("missing env ORDERS_TABLE")
	}
	if e.AppointmentsTable == "" {
		return Env{}, fmt.Errorf("missing env APPOINTMENTS_TABLE")
	}
	return e, nil
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func seconds(k, def string) (time.Duration, error) {
	n, err := strconv.Atoi(get(k, def))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid env %s: %q", k, os.Getenv(k))
	}
	return time.Duration(n) * time.Second, nil
}
