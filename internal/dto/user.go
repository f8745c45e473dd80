package dto

import (
	"time"

	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/security"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64              `json:"id"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Role        models.Role         `json:"role"`
	Permissions []models.Permission `json:"permissions"`
	CreatedBy   *uint64             `json:"createdBy,omitempty"`
	UpdatedBy   *uint64             `json:"updatedBy,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// IdentityDTO is the decoded access token returned by verify-token
type IdentityDTO struct {
	UserID      uint64              `json:"userId"`
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	Role        models.Role         `json:"role"`
	Permissions []models.Permission `json:"permissions"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	ExpiresAt   *time.Time          `json:"expiresAt,omitempty"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// TokenResponse is returned by a successful refresh
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// CreateUserRequest is the registration body
type CreateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	Email       string   `json:"email" binding:"omitempty,email"`
	Role        string   `json:"role"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// UpdateProfileRequest is the self-service update body
type UpdateProfileRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Name      *string `json:"name"`
	// Role and Permissions are accepted only so that attempts to set them can be refused
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
}

// LoginRequest holds login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest holds a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest checks a reset code
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// UpdatePasswordRequest sets a new password
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []models.Permission{}
	}
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		Permissions: permissions,
		CreatedBy:   user.CreatedBy,
		UpdatedBy:   user.UpdatedBy,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToIdentityDTO converts verified access token claims
func ToIdentityDTO(claims *security.Claims) IdentityDTO {
	identity := IdentityDTO{
		UserID:      claims.UserID,
		Username:    claims.Username,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
		FirstName:   claims.FirstName,
		LastName:    claims.LastName,
	}
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		identity.ExpiresAt = &expires
	}
	return identity
}
