package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService(t *testing.T) {
	svc := NewJWTService("secret", 8*time.Hour)

	assert.NotNil(t, svc)
	assert.Equal(t, 8*time.Hour, svc.Expiry())
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateToken("admin@example.com", RoleAdmin)

	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(15*60), token.ExpiresIn)
}

func TestJWTService_ValidateToken_Valid(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	token, err := svc.GenerateToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "showcase-api", claims.Issuer)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	svc1 := NewJWTService("secret-1", 15*time.Minute)
	svc2 := NewJWTService("secret-2", 15*time.Minute)

	token, err := svc1.GenerateToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	_, err = svc2.ValidateToken(token.AccessToken)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Millisecond)

	token, err := svc.GenerateToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)

	_, err = svc.ValidateToken(token.AccessToken)

	assert.Error(t, err)
}

func TestJWTService_ValidateToken_ForeignIssuer(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "admin@example.com",
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)

	assert.Error(t, err)
}

func TestJWTService_ValidateToken_MalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt-token"},
		{"partial jwt", "eyJhbGciOiJIUzI1NiJ9."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_TokensAreDistinct(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute)

	first, err := svc.GenerateToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)
	second, err := svc.GenerateToken("admin@example.com", RoleAdmin)
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessToken, second.AccessToken)
}
