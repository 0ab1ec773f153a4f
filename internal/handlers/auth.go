package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/services"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type AuthHandler struct {
	admin  AdminServiceInterface
	logger *zap.Logger
}

func NewAuthHandler(admin AdminServiceInterface, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{admin: admin, logger: logger}
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		badRequest(c, "email and password are required")
		return
	}

	token, err := h.admin.Login(req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		h.logger.Warn("admin login rejected", zap.String("email", req.Email))
		middleware.Respond(c, http.StatusUnauthorized, dto.Fail("invalid credentials"))
		return
	case errors.Is(err, services.ErrLoginDisabled):
		middleware.Respond(c, http.StatusServiceUnavailable, dto.Fail("admin login is not configured"))
		return
	case err != nil:
		h.logger.Error("failed to issue admin token", zap.Error(err))
		middleware.Respond(c, http.StatusInternalServerError, dto.Fail("failed to issue token"))
		return
	}

	middleware.Respond(c, http.StatusOK, dto.OKWithMessage(dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	}, "login successful"))
}
