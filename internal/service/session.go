package service

import (
	"crypto/subtle"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmcdole/reel/internal/domain"
)

// AdminCredentials is the single configured admin account
type AdminCredentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// SessionService manages the admin session
type SessionService struct {
	store  CurationStore
	admin  AdminCredentials
	logger *slog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(store CurationStore, admin AdminCredentials, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		store:  store,
		admin:  admin,
		logger: logger,
	}
}

// Login checks the credentials and starts a session
func (s *SessionService) Login(username, password string) error {
	if s.admin.PasswordHash == "" {
		return domain.ErrAdminNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))

	if !userOK || passErr != nil {
		if passErr != nil && !errors.Is(passErr, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("admin password hash is unusable", "error", passErr)
		}
		s.logger.Info("admin login rejected", "username", username)
		return domain.ErrInvalidCredentials
	}

	if err := s.store.SetSession(true); err != nil {
		return err
	}
	s.logger.Info("admin logged in", "username", username)
	return nil
}

// Logout ends the session
func (s *SessionService) Logout() error {
	return s.store.ClearSession()
}

// Authenticated reports whether a valid session exists
func (s *SessionService) Authenticated() (bool, error) {
	return s.store.SessionValid()
}

// HashPassword returns the bcrypt hash to put in the admin config
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
