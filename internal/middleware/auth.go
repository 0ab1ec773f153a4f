package middleware

import (
	"net/http"
	"strings"

	"github.com/dimitrije/showcase-api/internal/services"
	"github.com/dimitrije/showcase-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const AdminEmailKey = "admin_email"

type TokenValidator interface {
	ValidateToken(token string) (*services.Claims, error)
}

// AdminAuth requires a bearer token issued by admin login. The token may
// also be passed as ?access_token= because EventSource cannot set headers.
func AdminAuth(validator TokenValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		token := c.QueryParam("access_token")

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				unauthorized(c, "invalid authorization header format")
				return
			}
			token = parts[1]
		}

		if token == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(AdminEmailKey, claims.Email)

		c.Next()
	}
}

func unauthorized(c *drift.Context, msg string) {
	Respond(c, http.StatusUnauthorized, dto.Fail(msg))
	c.Abort()
}

func GetAdminEmail(c *drift.Context) string {
	if email, ok := c.Get(AdminEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}
