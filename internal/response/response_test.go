package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decode(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("invalid json %s: %v", body, err)
	}
	return m
}

func TestBuild_SuccessKeepsEmptyList(t *testing.T) {
	res := Build(http.StatusOK, OK([]string{}, "Retrieved 0 orders successfully"))

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	body := decode(t, res.Body)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 0 {
		t.Fatalf("data should be an empty list, got %#v", body["data"])
	}
	if body["message"] != "Retrieved 0 orders successfully" {
		t.Fatalf("message = %v", body["message"])
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("success envelope must not carry error")
	}
}

func TestBuild_FailureNeverCarriesData(t *testing.T) {
	env := Fail("Order not found", "Order with ID 999 was not found")
	env.Data = map[string]string{"leak": "x"}

	body := decode(t, Build(http.StatusNotFound, env).Body)
	if _, ok := body["data"]; ok {
		t.Fatalf("failure envelope must not carry data: %v", body)
	}
	if body["success"] != false || body["error"] != "Order not found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestBuild_Headers(t *testing.T) {
	h := Build(http.StatusOK, OK([]int{}, "ok")).Headers
	if h["Content-Type"] != "application/json" || h["Access-Control-Allow-Origin"] != "*" {
		t.Fatalf("unexpected headers %v", h)
	}
	if h["Access-Control-Allow-Methods"] != "GET,POST,PUT,DELETE,OPTIONS" {
		t.Fatalf("allow methods = %q", h["Access-Control-Allow-Methods"])
	}
}

func TestBuild_UnencodableData(t *testing.T) {
	res := Build(http.StatusOK, OK(make(chan int), "nope"))
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if decode(t, res.Body)["success"] != false {
		t.Fatal("expected failure envelope")
	}
}

func TestWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, http.StatusBadRequest, Fail("Order ID is required", "Please provide a valid order ID"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatal("cors headers missing")
	}
	if decode(t, w.Body.Bytes())["error"] != "Order ID is required" {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
