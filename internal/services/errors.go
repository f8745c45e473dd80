package services

import (
	apierrors "github.com/inc-tasks/task-api/internal/errors"
)

var (
	ErrInvalidCredentials   = apierrors.Auth("Invalid username or password")
	ErrCredentialsRequired  = apierrors.Validation("Username and password are required")
	ErrRefreshTokenRequired = apierrors.Validation("Refresh token is required")
	ErrRefreshTokenType     = apierrors.Auth("Invalid token type")
	ErrRefreshTokenInvalid  = apierrors.Auth("Invalid or expired refresh token")
	ErrAccessTokenType      = apierrors.Auth("Invalid token type. Access token required.")
	ErrAccessTokenInvalid   = apierrors.Auth("Invalid or expired token")
	ErrTokenUserNotFound    = apierrors.Auth("User not found")

	ErrEmailRequired          = apierrors.Validation("Email is required")
	ErrEmailAndOTPRequired    = apierrors.Validation("Email and OTP are required")
	ErrEmailAndPasswordNeeded = apierrors.Validation("Email and new password are required")
	ErrNoUserWithEmail        = apierrors.NotFound("No user found with this email address")
	ErrInvalidOTP             = apierrors.Validation("Invalid or expired OTP")

	ErrUserNotFound      = apierrors.NotFound("User not found")
	ErrUsernameRequired  = apierrors.Validation("Username is required")
	ErrPasswordTooShort  = apierrors.Validation("Password must be at least 6 characters long")
	ErrInvalidRole       = apierrors.Validation("Role must be one of: admin, user")
	ErrInvalidRoleFilter = apierrors.Validation("Invalid role. Allowed roles: admin, user")
	ErrEmailExists       = apierrors.Conflict("Email already exists")
	ErrUsernameExists    = apierrors.Conflict("Username already exists")
	ErrAdminOnlyRole     = apierrors.Forbidden("Only admins can create admin users")
	ErrPrivilegedUpdate  = apierrors.Forbidden("Role and permissions can only be changed by an admin")

	ErrTaskNotFound         = apierrors.NotFound("Task not found")
	ErrTitleRequired        = apierrors.Validation("Title is required")
	ErrTitleEmpty           = apierrors.Validation("Title cannot be empty")
	ErrInvalidStatus        = apierrors.Validation("Invalid status value")
	ErrInvalidPriority      = apierrors.Validation("Invalid priority value")
	ErrInvalidAssignedTo    = apierrors.Validation("Invalid assignedTo user ID format")
	ErrAssigneeNotFound     = apierrors.Validation("Assigned user not found")
	ErrAssignedByName       = apierrors.Validation("AssignedByName is required")
	ErrInvalidAssignedBy    = apierrors.Validation("Valid assignedBy user ID is required")
	ErrUpdatedByRequired    = apierrors.Validation("Valid updatedBy user ID is required")
	ErrUpdatedByName        = apierrors.Validation("UpdatedByName is required")
	ErrDraftTextRequired    = apierrors.Validation("Text is required")
	ErrAIServiceUnavailable = apierrors.Unavailable("AI service is not configured")
)
