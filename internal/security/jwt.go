package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/inc-tasks/task-api/internal/models"
)

// TokenType discriminates access tokens from refresh tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and expiry
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrInvalidTokenType is returned when a verified token carries the wrong discriminator
	ErrInvalidTokenType = errors.New("invalid token type")
)

// Claims is the payload of both token kinds. Refresh tokens only carry UserID and Type.
type Claims struct {
	UserID      uint64              `json:"userId"`
	Username    string              `json:"username,omitempty"`
	Email       string              `json:"email,omitempty"`
	Role        models.Role         `json:"role,omitempty"`
	Permissions []models.Permission `json:"permissions,omitempty"`
	FirstName   string              `json:"firstName,omitempty"`
	LastName    string              `json:"lastName,omitempty"`
	Type        TokenType           `json:"type"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the identity may use admin routes
func (c *Claims) IsAdmin() bool {
	if c.Role == models.RoleAdmin {
		return true
	}
	for _, p := range c.Permissions {
		if p == models.PermissionAdmin {
			return true
		}
	}
	return false
}

// DisplayName is the name stamped onto records the identity touches
func (c *Claims) DisplayName() string {
	user := models.User{FirstName: c.FirstName, LastName: c.LastName}
	if name := user.FullName(); name != "" {
		return name
	}
	return c.Username
}

// TokenManager signs and verifies HS256 tokens
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager creates a TokenManager. An empty refresh secret reuses the access secret.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if refreshSecret == "" {
		refreshSecret = accessSecret
	}
	if accessTTL <= 0 {
		accessTTL = constants.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = constants.DefaultRefreshTokenTTL
	}

	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// IssueAccessToken signs a short lived token carrying the user's identity
func (m *TokenManager) IssueAccessToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Role:             user.Role,
		Permissions:      user.Permissions,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Type:             TokenTypeAccess,
		RegisteredClaims: m.registered(user.ID, m.accessTTL),
	}
	return m.sign(claims, m.accessSecret)
}

// IssueRefreshToken signs a long lived token that can only mint access tokens
func (m *TokenManager) IssueRefreshToken(userID uint64) (string, error) {
	claims := &Claims{
		UserID:           userID,
		Type:             TokenTypeRefresh,
		RegisteredClaims: m.registered(userID, m.refreshTTL),
	}
	return m.sign(claims, m.refreshSecret)
}

// ParseAccessToken verifies an access token
func (m *TokenManager) ParseAccessToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken verifies a refresh token
func (m *TokenManager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

func (m *TokenManager) registered(userID uint64, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    constants.TokenIssuer,
	}
}

func (m *TokenManager) sign(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parse verifies the signature with the secret belonging to the token's declared type, then
// checks the type against want. A well signed token of the other kind yields ErrInvalidTokenType.
func (m *TokenManager) parse(tokenString string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		declared, ok := token.Claims.(*Claims)
		if ok && declared.Type == TokenTypeRefresh {
			return m.refreshSecret, nil
		}
		return m.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != want {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}
