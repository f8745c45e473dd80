package repository

import (
	"context"
	"time"

	"github.com/inc-tasks/task-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update saves every column of a task
	Update(ctx context.Context, task *models.Task) error

	// UpdateStatus sets the status and audit fields. Returns gorm.ErrRecordNotFound for unknown ids.
	UpdateStatus(ctx context.Context, id uint64, status models.TaskStatus, updatedBy uint64, updatedByName string) error

	// Delete soft deletes a task
	Delete(ctx context.Context, id uint64) error

	// Stats counts tasks per status and priority
	Stats(ctx context.Context, userID *uint64) (*models.TaskStats, error)
}

// TaskFilter holds filtering options for listing tasks. Nil fields are not constrained.
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	AssignedTo *uint64
	AssignedBy *uint64
	Search     string
	Page       int
	Limit      int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user. Unique index violations are reported as ErrDuplicateEmail or ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email, case-insensitively
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByEmailAndOTP finds a user whose stored OTP matches and expires after now
	FindByEmailAndOTP(ctx context.Context, email, otp string, now time.Time) (*models.User, error)

	// List retrieves users with filtering and pagination
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)

	// ExistsByEmail reports whether another user already owns email
	ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error)

	// ExistsByUsername reports whether another user already owns username
	ExistsByUsername(ctx context.Context, username string, excludeID uint64) (bool, error)

	// Update saves every column of a user
	Update(ctx context.Context, user *models.User) error

	// SetOTP stores a reset code and its expiry
	SetOTP(ctx context.Context, id uint64, otp string, expiresAt time.Time) error

	// UpdatePassword replaces the password hash and clears any reset code
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error

	// Delete permanently removes a user
	Delete(ctx context.Context, id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role   *models.Role
	Search string
	Page   int
	Limit  int
}
