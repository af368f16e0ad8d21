// Package response builds the uniform JSON envelope returned by every API operation.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every response. Success envelopes always carry Data;
// failure envelopes never do.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Response is a fully rendered wire response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// OK wraps data in a success envelope. Pass a non-nil slice for lists so an empty
// result renders as [] rather than being dropped.
func OK(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail builds a failure envelope from a short category and a human-readable detail.
func Fail(category, message string) Envelope {
	return Envelope{Success: false, Error: category, Message: message}
}

// Headers returns the fixed header set sent with every response.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// Build renders an envelope with the fixed headers.
func Build(statusCode int, env Envelope) Response {
	if !env.Success {
		env.Data = nil
	}
	body, err := json.Marshal(env)
	if err != nil {
		// only reachable with unencodable data; degrade to a plain failure
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(Fail("Internal server error", "Failed to encode response"))
	}
	return Response{StatusCode: statusCode, Headers: Headers(), Body: body}
}

// Write renders env and writes it to the gin context.
func Write(c *gin.Context, statusCode int, env Envelope) {
	res := Build(statusCode, env)
	for k, v := range res.Headers {
		c.Header(k, v)
	}
	c.Data(res.StatusCode, res.Headers["Content-Type"], res.Body)
}
