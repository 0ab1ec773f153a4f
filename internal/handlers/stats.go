package handlers

import (
	"context"
	"net/http"

	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type StatsHandler struct {
	facade FacadeInterface
}

func NewStatsHandler(facade FacadeInterface) *StatsHandler {
	return &StatsHandler{facade: facade}
}

// Get returns dashboard counters. Counts come from head-only remote queries;
// when those are unavailable they are taken from the collections instead.
func (h *StatsHandler) Get(c *drift.Context) {
	ctx := c.Request.Context()
	var resp dto.StatsResponse

	count := func(resource, field, value string) int64 {
		if n, ok := h.facade.Count(ctx, resource, field, value); ok {
			return n
		}
		resp.Approximate = true
		return h.countLocally(ctx, resource, field, value)
	}

	resp.Products = count(models.ResourceProducts, "", "")
	resp.News = count(models.ResourceNews, "", "")
	resp.Inquiries = count(models.ResourceInquiries, "", "")
	resp.NewInquiries = count(models.ResourceInquiries, models.FieldStatus, models.InquiryStatusNew)
	resp.Users = count(models.ResourceUsers, "", "")

	middleware.Respond(c, http.StatusOK, dto.OK(resp))
}

func (h *StatsHandler) countLocally(ctx context.Context, resource, field, value string) int64 {
	records := h.facade.Get(ctx, resource)
	return int64(len(facade.Filter(records, remote.Query{Field: field, Value: value})))
}
