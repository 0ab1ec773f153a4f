package services

import (
	"crypto/subtle"
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// AdminService checks the single configured admin credential pair and
// issues dashboard tokens.
type AdminService struct {
	email    string
	password string
	jwt      *JWTService
}

func NewAdminService(email, password string, jwt *JWTService) *AdminService {
	return &AdminService{
		email:    strings.TrimSpace(email),
		password: password,
		jwt:      jwt,
	}
}

func (s *AdminService) Login(email, password string) (*Token, error) {
	if s.email == "" || s.password == "" {
		return nil, ErrLoginDisabled
	}

	emailOK := strings.EqualFold(strings.TrimSpace(email), s.email)
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(s.email, RoleAdmin)
}

func (s *AdminService) ValidateToken(token string) (*Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}
