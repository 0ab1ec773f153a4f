package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/sse"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type EventsHandler struct {
	hub SSEHubInterface
}

func NewEventsHandler(hub SSEHubInterface) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream relays change notifications to the dashboard. ?resources= takes a
// comma separated list; without it every resource is streamed.
func (h *EventsHandler) Stream(c *drift.Context) {
	watch := make(map[string]bool)
	for _, r := range strings.Split(c.QueryParam("resources"), ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !models.IsResource(r) {
			badRequest(c, "unknown resource: "+r)
			return
		}
		watch[r] = true
	}

	client := &sse.Client{
		ID:        uuid.New().String(),
		Resources: watch,
		Send:      make(chan []byte, 64),
	}

	if !h.hub.Register(client) {
		middleware.Respond(c, http.StatusServiceUnavailable, dto.Fail("event stream is shutting down"))
		return
	}
	defer h.hub.Unregister(client)

	sseCtx := c.SSE()

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": client.ID,
	}, "system", ""); err != nil {
		return
	}

	done := c.Request.Context().Done()
	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
