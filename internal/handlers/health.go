package handlers

import (
	"net/http"

	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler struct {
	facade FacadeInterface
}

func NewHealthHandler(facade FacadeInterface) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Health re-checks the remote backend. Running on the local fallback is
// reported as degraded but still answers 200.
func (h *HealthHandler) Health(c *drift.Context) {
	mode := h.facade.Recheck(c.Request.Context())

	status := "ok"
	if mode != facade.ModeRemote {
		status = "degraded"
	}

	middleware.Respond(c, http.StatusOK, dto.OK(dto.HealthResponse{
		Status:  status,
		Backend: mode.String(),
	}))
}

// Metrics serves the Prometheus exposition format.
func Metrics() drift.HandlerFunc {
	handler := promhttp.Handler()
	return func(c *drift.Context) {
		handler.ServeHTTP(c.Response, c.Request)
		c.Abort()
	}
}
