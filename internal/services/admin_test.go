package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService() *AdminService {
	return NewAdminService("admin@example.com", "s3cret", NewJWTService("test-secret", time.Hour))
}

func TestAdminService_Login(t *testing.T) {
	svc := newTestAdminService()

	token, err := svc.Login("Admin@Example.com ", "s3cret")

	require.NoError(t, err)
	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestAdminService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAdminService()

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.com", "guess"},
		{"wrong email", "root@example.com", "s3cret"},
		{"empty", "", ""},
		{"password prefix", "admin@example.com", "s3cre"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := svc.Login(tc.email, tc.password)
			assert.Nil(t, token)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAdminService_Login_Disabled(t *testing.T) {
	svc := NewAdminService("admin@example.com", "", NewJWTService("test-secret", time.Hour))

	_, err := svc.Login("admin@example.com", "")

	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestAdminService_ValidateToken_RejectsOtherRoles(t *testing.T) {
	jwtSvc := NewJWTService("test-secret", time.Hour)
	svc := NewAdminService("admin@example.com", "s3cret", jwtSvc)

	token, err := jwtSvc.GenerateToken("viewer@example.com", "viewer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
