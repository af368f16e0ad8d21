package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-orders-appointments-api/internal/appointments"
	"github.com/imrishuroy/go-orders-appointments-api/internal/response"
	"github.com/imrishuroy/go-orders-appointments-api/internal/validation"
)

// RegisterAppointmentsRoutes registers routes for the appointments API.
func RegisterAppointmentsRoutes(r gin.IRouter, cfg Config) {
	v := validation.New()
	jc, rec := storeOptions(cfg)
	store := appointments.NewStore(cfg.DynamoDBClient, cfg.AppointmentsTable,
		appointments.WithCache(jc), appointments.WithRecorder(rec))

	r.GET("/appointments", func(c *gin.Context) {
		var q validation.AppointmentsQuery
		if err := validation.BindQueryAndValidate(c, &q, v); err != nil {
			return
		}

		list, err := store.List(c.Request.Context(), appointments.Filter{
			Date:         q.Date,
			PatientEmail: q.PatientEmail,
			Doctor:       q.Doctor,
		})
		if err != nil {
			writeStoreError(c, cfg, err, "retrieve appointments")
			return
		}
		response.Write(c, http.StatusOK, response.OK(list, fmt.Sprintf("Retrieved %d appointments successfully", len(list))))
	})

	getOne := func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			response.Write(c, http.StatusBadRequest, response.Fail("Appointment ID is required", "Please provide a valid appointment ID"))
			return
		}

		a, err := store.Get(c.Request.Context(), id)
		if err != nil {
			writeStoreError(c, cfg, err, "retrieve appointment")
			return
		}
		if a == nil {
			response.Write(c, http.StatusNotFound, response.Fail("Appointment not found", fmt.Sprintf("Appointment with ID %s was not found", id)))
			return
		}
		response.Write(c, http.StatusOK, response.OK(a, "Appointment retrieved successfully"))
	}
	r.GET("/appointments/:id", getOne)
	r.GET("/appointments/", getOne)
}
