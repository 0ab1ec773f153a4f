package handlers

import (
	"net/http"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ContactHandler struct {
	facade FacadeInterface
}

func NewContactHandler(facade FacadeInterface) *ContactHandler {
	return &ContactHandler{facade: facade}
}

// Submit stores a contact form submission as a new inquiry.
func (h *ContactHandler) Submit(c *drift.Context) {
	var req dto.ContactRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result := h.facade.Submit(c.Request.Context(), models.ResourceInquiries, req.Record())
	if !result.Success {
		writeError(c, result.Err, "failed to submit inquiry")
		return
	}

	middleware.Respond(c, http.StatusCreated, dto.OKWithMessage(result.Record, "thank you, we will get back to you soon"))
}
