package middleware

import (
	"net/http"

	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const StatusKey = "response_status"

// Respond writes body as JSON and records the status for the request
// logger and metrics.
func Respond(c *drift.Context, status int, body dto.Envelope) {
	c.Set(StatusKey, status)
	_ = c.JSON(status, body)
}

// Status returns the status recorded by Respond, or 200.
func Status(c *drift.Context) int {
	if v, ok := c.Get(StatusKey); ok {
		if code, ok := v.(int); ok {
			return code
		}
	}
	return http.StatusOK
}
