package services

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials holds the single configured admin account. The password
// is a bcrypt hash loaded from configuration; nothing is read from the
// users table for admin access.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService verifies the admin credential. Successful verification is
// turned into a signed token by the HTTP layer; no session state is kept on
// the server or trusted from the client.
type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) error
}

type authService struct {
	admin AdminCredentials
}

func NewAuthService(admin AdminCredentials) AuthService {
	return &authService{admin: admin}
}

func (s *authService) AdminLogin(_ context.Context, username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1

	err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))
	if err != nil || !usernameMatch {
		return ErrInvalidCredentials
	}
	return nil
}
