package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"
)

type authService struct {
	username     string
	passwordHash string
	tokens       security.TokenManager
}

// NewAuthService authenticates the single configured administrator.
func NewAuthService(username, passwordHash string, tokens security.TokenManager) AuthService {
	return &authService{username: username, passwordHash: passwordHash, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	logger.EnterMethod("authService.Login", "username", username)

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	// bcrypt runs for unknown usernames too
	passOK := security.CheckPassword(s.passwordHash, password)
	if !userOK || !passOK {
		logger.Warn("Admin login failed", "username", username)
		return "", time.Time{}, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.GenerateAdminToken(s.username)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return "", time.Time{}, err
	}
	logger.ExitMethod("authService.Login", "username", username)
	return token, expiresAt, nil
}

func (s *authService) Authorize(ctx context.Context, token string) (domain.Operator, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		logger.Debug("Token rejected", "error", err)
		return domain.Operator{}, domain.ErrUnauthorized
	}
	return domain.NewOperator(claims.Username), nil
}
