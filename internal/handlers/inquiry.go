package handlers

import (
	"net/http"
	"strconv"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

var inquiryStatuses = map[string]bool{
	models.InquiryStatusNew:      true,
	models.InquiryStatusRead:     true,
	models.InquiryStatusReplied:  true,
	models.InquiryStatusArchived: true,
}

type InquiryHandler struct {
	facade FacadeInterface
}

func NewInquiryHandler(facade FacadeInterface) *InquiryHandler {
	return &InquiryHandler{facade: facade}
}

// List returns inquiries newest first, optionally filtered by ?status=.
func (h *InquiryHandler) List(c *drift.Context) {
	q := remote.Query{
		OrderBy: models.FieldCreatedAt,
		Desc:    true,
	}

	if status := c.QueryParam("status"); status != "" {
		if !inquiryStatuses[status] {
			badRequest(c, "invalid status")
			return
		}
		q.Field = models.FieldStatus
		q.Value = status
	}

	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			badRequest(c, "invalid limit")
			return
		}
		q.Limit = n
	}

	records := h.facade.List(c.Request.Context(), models.ResourceInquiries, q)
	middleware.Respond(c, http.StatusOK, dto.OK(records))
}
