package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/inc-tasks/task-api/internal/security"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
	hasher   *PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// TokenPair is returned by a successful refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues an access and a refresh token.
// Unknown usernames and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.CompareDummy(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh mints a new access token from a refresh token. The user is re-read so role and
// permission changes since login are reflected; the refresh token is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, security.ErrInvalidTokenType) {
			return nil, ErrRefreshTokenType
		}
		return nil, ErrRefreshTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccessToken decodes a bearer token into the caller's identity.
func (s *AuthService) VerifyAccessToken(token string) (*security.Claims, error) {
	claims, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		if errors.Is(err, security.ErrInvalidTokenType) {
			return nil, ErrAccessTokenType
		}
		return nil, ErrAccessTokenInvalid
	}
	return claims, nil
}
