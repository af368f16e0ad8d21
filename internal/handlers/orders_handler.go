package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-orders-appointments-api/internal/orders"
	"github.com/imrishuroy/go-orders-appointments-api/internal/response"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// RegisterOrdersRoutes registers routes for the orders API.
func RegisterOrdersRoutes(r gin.IRouter, cfg Config) {
	v := validation.New()
	jc, rec := storeOptions(cfg)
	store := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable, orders.WithCache(jc), orders.WithRecorder(rec))

	r.GET("/orders", func(c *gin.Context) {
		var q validation.OrdersQuery
		if err := validation.BindQueryAndValidate(c, &q, v); err != nil {
			// BindQueryAndValidate already wrote a 400
			return
		}

		list, err := store.List(c.Request.Context(), orders.Filter{CustomerEmail: q.CustomerEmail, Status: q.Status})
		if err != nil {
			writeStoreError(c, cfg, err, "retrieve orders")
			return
		}
		response.Write(c, http.StatusOK, response.OK(list, fmt.Sprintf("Retrieved %d orders successfully", len(list))))
	})

	getOne := func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			response.Write(c, http.StatusBadRequest, response.Fail("Order ID is required", "Please provide a valid order ID"))
			return
		}

		o, err := store.Get(c.Request.Context(), id)
		if err != nil {
			writeStoreError(c, cfg, err, "retrieve order")
			return
		}
		if o == nil {
			response.Write(c, http.StatusNotFound, response.Fail("Order not found", fmt.Sprintf("Order with ID %s was not found", id)))
			return
		}
		response.Write(c, http.StatusOK, response.OK(o, "Order retrieved successfully"))
	}
	r.GET("/orders/:id", getOne)
	r.GET("/orders/", getOne)
}
