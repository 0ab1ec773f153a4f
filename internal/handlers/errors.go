package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// writeError maps facade and backend errors onto the envelope.
func writeError(c *drift.Context, err error, fallback string) {
	var verr *facade.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.Respond(c, http.StatusBadRequest, dto.FailWithMessage(verr.Error(), "please check the highlighted field"))
	case errors.Is(err, remote.ErrNotFound):
		middleware.Respond(c, http.StatusNotFound, dto.Fail("not found"))
	case errors.Is(err, remote.ErrUnknownResource):
		middleware.Respond(c, http.StatusBadRequest, dto.Fail("unknown resource"))
	case errors.Is(err, facade.ErrRemoteUnavailable):
		middleware.Respond(c, http.StatusServiceUnavailable, dto.FailWithMessage("backend unavailable", "please try again later"))
	default:
		middleware.Respond(c, http.StatusInternalServerError, dto.Fail(fallback))
	}
}

func badRequest(c *drift.Context, msg string) {
	middleware.Respond(c, http.StatusBadRequest, dto.Fail(msg))
}
