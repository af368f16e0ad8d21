package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imrishuroy/go-orders-appointments-api/internal/ddb/ddbtest"
	"github.com/imrishuroy/go-orders-appointments-api/internal/metrics"
	"github.com/imrishuroy/go-orders-appointments-api/internal/seed/seedtest"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func newTestRouter(t *testing.T, f *ddbtest.Fake, dev bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(Config{
		DynamoDBClient:    f,
		OrdersTable:       seedtest.OrdersTable,
		AppointmentsTable: seedtest.AppointmentsTable,
		Prometheus:        metrics.NewPrometheus(prometheus.NewRegistry()),
		Development:       dev,
	})
}

func do(t *testing.T, r http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: body is not an envelope: %v (%s)", method, target, err, w.Body.String())
	}
	return w, env
}

func listIDs(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var items []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("data is not a list: %v (%s)", err, raw)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return strings.Join(out, ",")
}

func TestListOrders(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	w, env := do(t, r, http.MethodGet, "/orders")
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
	if env.Message != "Retrieved 7 orders successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if got := listIDs(t, env.Data); got != "6,7,1,2,3,4,5" {
		t.Fatalf("unexpected order %s", got)
	}
	for k, v := range map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	} {
		if w.Header().Get(k) != v {
			t.Fatalf("header %s = %q, want %q", k, w.Header().Get(k), v)
		}
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("missing request id")
	}
}

func TestListOrders_Filters(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	_, env := do(t, r, http.MethodGet, "/orders?status=pending")
	if got := listIDs(t, env.Data); got != "6,1" {
		t.Fatalf("status filter: got %s", got)
	}
	_, env = do(t, r, http.MethodGet, "/orders?customerEmail=carmen.silva@email.com")
	if got := listIDs(t, env.Data); got != "5" {
		t.Fatalf("email filter: got %s", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?customerEmail=nobody@email.com", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Fatalf("empty result must render as []: %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Retrieved 0 orders successfully") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestListOrders_InvalidQuery(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	for _, target := range []string{
		"/orders?status=lost",
		"/orders?customerEmail=not-an-email",
		"/orders?status=pending&customerEmail=maria.gonzalez@email.com",
	} {
		w, env := do(t, r, http.MethodGet, target)
		if w.Code != http.StatusBadRequest || env.Success || env.Error != "Invalid query parameters" {
			t.Fatalf("%s: unexpected response %d %+v", target, w.Code, env)
		}
		if env.Data != nil {
			t.Fatalf("%s: failure must not carry data", target)
		}
	}
}

func TestGetOrder(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	w, env := do(t, r, http.MethodGet, "/orders/1")
	if w.Code != http.StatusOK || env.Message != "Order retrieved successfully" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
	var o map[string]any
	if err := json.Unmarshal(env.Data, &o); err != nil {
		t.Fatalf("data: %v", err)
	}
	if o["customerName"] != "María González" || o["estimatedDelivery"] != "2025-07-20T00:00:00.000-03:00" {
		t.Fatalf("unexpected order %v", o)
	}
	for _, storageOnly := range []string{"PK", "SK", "GSI1PK", "GSI1SK"} {
		if _, ok := o[storageOnly]; ok {
			t.Fatalf("storage attribute %s leaked", storageOnly)
		}
	}
	if _, ok := o["trackingNumber"]; ok {
		t.Fatal("absent optional field must be omitted")
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	w, env := do(t, r, http.MethodGet, "/orders/999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Success || env.Error != "Order not found" || env.Message != "Order with ID 999 was not found" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestGetOrder_MissingID(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	w, env := do(t, r, http.MethodGet, "/orders/")
	if w.Code != http.StatusBadRequest || env.Error != "Order ID is required" || env.Message != "Please provide a valid order ID" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
}

func TestListAppointments(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	cases := []struct {
		query string
		want  string
	}{
		{"", "1,4,6,2,3,5,7,8"},
		{"?date=2025-07-22", "1,4"},
		{"?doctor=" + url.QueryEscape("Dr. Carlos Rodríguez"), "1,4,8"},
		{"?doctor=" + url.QueryEscape("Dr. Carlos Rodríguez") + "&date=2025-07-28", "8"},
		{"?patientEmail=elena.martinez@email.com", "5"},
	}
	for _, tc := range cases {
		w, env := do(t, r, http.MethodGet, "/appointments"+tc.query)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.query, w.Code)
		}
		if got := listIDs(t, env.Data); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.query, got, tc.want)
		}
	}

	_, env := do(t, r, http.MethodGet, "/appointments?date=2025-07-22")
	if env.Message != "Retrieved 2 appointments successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestListAppointments_InvalidQuery(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	for _, target := range []string{
		"/appointments?date=tomorrow",
		"/appointments?patientEmail=ana.rodriguez@email.com&date=2025-07-27",
	} {
		w, env := do(t, r, http.MethodGet, target)
		if w.Code != http.StatusBadRequest || env.Error != "Invalid query parameters" {
			t.Fatalf("%s: unexpected response %d %+v", target, w.Code, env)
		}
	}
}

func TestGetAppointment(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	w, env := do(t, r, http.MethodGet, "/appointments/7")
	if w.Code != http.StatusOK || env.Message != "Appointment retrieved successfully" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
	w, env = do(t, r, http.MethodGet, "/appointments/42")
	if w.Code != http.StatusNotFound || env.Error != "Appointment not found" || env.Message != "Appointment with ID 42 was not found" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)

	for method, target := range map[string]string{
		http.MethodDelete: "/orders",
		http.MethodPost:   "/appointments",
		http.MethodGet:    "/invoices",
	} {
		w, env := do(t, r, method, target)
		if w.Code != http.StatusNotFound || env.Success || env.Error != "Endpoint not found" {
			t.Fatalf("%s %s: unexpected response %d %+v", method, target, w.Code, env)
		}
		if want := "No endpoint for " + method + " " + target; env.Message != want {
			t.Fatalf("message = %q, want %q", env.Message, want)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatal("404 must carry CORS headers")
		}
	}
}

func TestStoreFailure(t *testing.T) {
	f := seedtest.Tables(t)
	f.Fail("Scan", errors.New("connection reset"))

	w, env := do(t, newTestRouter(t, f, false), http.MethodGet, "/orders")
	if w.Code != http.StatusInternalServerError || env.Error != "Internal server error" || env.Message != "Failed to retrieve orders" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}

	_, env = do(t, newTestRouter(t, f, true), http.MethodGet, "/appointments")
	if !strings.HasPrefix(env.Message, "Failed to retrieve appointments: ") || !strings.Contains(env.Message, "connection reset") {
		t.Fatalf("development mode should include the detail, got %q", env.Message)
	}
}

func TestRequestIDEcho(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("unexpected response %d id=%q", w.Code, w.Header().Get(RequestIDHeader))
	}
}

func TestPanicRecovery(t *testing.T) {
	r := newTestRouter(t, seedtest.Tables(t), false)
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w, env := do(t, r, http.MethodGet, "/boom")
	if w.Code != http.StatusInternalServerError || env.Error != "Internal server error" {
		t.Fatalf("unexpected response %d %+v", w.Code, env)
	}
	if strings.Contains(env.Message, "kaboom") {
		t.Fatal("panic detail must stay hidden outside development")
	}
}
