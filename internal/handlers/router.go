package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/aws"
	"github.com/imrishuroy/go-orders-appointments-api/internal/cache"
	"github.com/imrishuroy/go-orders-appointments-api/internal/metrics"
	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
	"github.com/imrishuroy/go-orders-appointments-api/internal/response"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// Envelope error categories.
const (
	ErrorInternal         = "Internal server error"
	ErrorEndpointNotFound = "Endpoint not found"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-Id"

// Config groups dependencies for the HTTP handlers.
type Config struct {
	DynamoDBClient    aws.DynamoDBAPI
	OrdersTable       string
	AppointmentsTable string
	Cache             cache.JSONCache     // nil disables caching
	Prometheus        *metrics.Prometheus // nil disables HTTP metrics
	Recorder          metrics.Recorder    // store operations; nil discards
	Development       bool                // expose error details in 500 messages
	AccessLog         bool                // gin access log, for local runs
}

// NewRouter builds the gin engine serving the read API.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	if cfg.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(requestID())
	if cfg.Prometheus != nil {
		r.Use(cfg.Prometheus.Middleware())
	}
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		msg := "An unexpected error occurred"
		if cfg.Development {
			msg = fmt.Sprint(recovered)
		}
		response.Write(c, http.StatusInternalServerError, response.Fail(ErrorInternal, msg))
		c.Abort()
	}))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterOrdersRoutes(r, cfg)
	RegisterAppointmentsRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		response.Write(c, http.StatusNotFound, response.Fail(ErrorEndpointNotFound,
			fmt.Sprintf("No endpoint for %s %s", c.Request.Method, c.Request.URL.Path)))
	})
	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func storeOptions(cfg Config) (cache.JSONCache, metrics.Recorder) {
	c := cfg.Cache
	if c == nil {
		c = cache.Nop{}
	}
	rec := cfg.Recorder
	if rec == nil {
		rec = metrics.Nop{}
	}
	return c, rec
}

// writeStoreError maps a resolver error to an envelope. what is the failed action,
// e.g. "retrieve orders".
func writeStoreError(c *gin.Context, cfg Config, err error, what string) {
	if errors.Is(err, orders.ErrInvalidFilter) || errors.Is(err, appointments.ErrInvalidFilter) {
		response.Write(c, http.StatusBadRequest, response.Fail(validation.ErrorInvalidQuery, err.Error()))
		return
	}
	log.Printf("[api] request=%s %s %s: %v", c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, err)
	msg := "Failed to " + what
	if cfg.Development {
		msg += ": " + err.Error()
	}
	response.Write(c, http.StatusInternalServerError, response.Fail(ErrorInternal, msg))
}
