package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// ResourceHandler serves the list/create/delete/replace endpoints of one
// resource collection.
type ResourceHandler struct {
	facade   FacadeInterface
	resource string
}

func NewResourceHandler(facade FacadeInterface, resource string) *ResourceHandler {
	return &ResourceHandler{facade: facade, resource: resource}
}

func (h *ResourceHandler) List(c *drift.Context) {
	records := h.facade.Get(c.Request.Context(), h.resource)
	middleware.Respond(c, http.StatusOK, dto.OK(records))
}

func (h *ResourceHandler) Create(c *drift.Context) {
	var rec models.Record
	if err := c.BindJSON(&rec); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result := h.facade.Submit(c.Request.Context(), h.resource, rec)
	if !result.Success {
		writeError(c, result.Err, "failed to create "+h.resource)
		return
	}

	middleware.Respond(c, http.StatusCreated, dto.OK(result.Record))
}

// Replace swaps the whole collection for the request body and answers with
// the stored collection, ids included.
func (h *ResourceHandler) Replace(c *drift.Context) {
	var records []models.Record
	if err := c.BindJSON(&records); err != nil {
		badRequest(c, "request body must be an array of records")
		return
	}

	if !h.facade.Save(c.Request.Context(), h.resource, records) {
		middleware.Respond(c, http.StatusServiceUnavailable, dto.FailWithMessage("failed to save "+h.resource, "no backend accepted the write"))
		return
	}

	middleware.Respond(c, http.StatusOK, dto.OK(h.facade.Get(c.Request.Context(), h.resource)))
}

func (h *ResourceHandler) Delete(c *drift.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		badRequest(c, "id is required")
		return
	}

	if err := h.facade.Delete(c.Request.Context(), h.resource, id); err != nil {
		writeError(c, err, "failed to delete record")
		return
	}

	middleware.Respond(c, http.StatusOK, dto.OK(dto.DeleteResponse{ID: id}))
}
