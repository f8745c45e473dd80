package repository

import (
	"context"
	"strings"
	"time"

	"github.com/inc-tasks/task-api/internal/database"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return translateUserWriteError(r.db.WithContext(ctx).Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailAndOTP finds a user holding an unexpired matching OTP
func (r *GormUserRepository) FindByEmailAndOTP(ctx context.Context, email, otp string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Where("reset_password_otp = ?", otp).
		Where("reset_password_otp_expires > ?", now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users newest first
func (r *GormUserRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Role != nil {
		query = query.Where("users.role = ?", *filter.Role)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query = searchColumns(query, term,
			"users.username", "users.email", "users.first_name", "users.last_name", "users.role")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := []models.User{}
	err := query.
		Scopes(database.NewestFirst("users"), database.Paginate(utils.NewPaginationParams(filter.Page, filter.Limit))).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ExistsByEmail reports whether a user other than excludeID owns email
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint64) (bool, error) {
	return r.exists(ctx, "email = ?", normalizeEmail(email), excludeID)
}

// ExistsByUsername reports whether a user other than excludeID owns username
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint64) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *GormUserRepository) exists(ctx context.Context, cond string, value any, excludeID uint64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where(cond, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates a user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	return translateUserWriteError(r.db.WithContext(ctx).Save(user).Error)
}

// SetOTP stores a reset code and its expiry
func (r *GormUserRepository) SetOTP(ctx context.Context, id uint64, otp string, expiresAt time.Time) error {
	return r.updateColumns(ctx, id, map[string]any{
		"reset_password_otp":         otp,
		"reset_password_otp_expires": expiresAt,
	})
}

// UpdatePassword replaces the password hash and clears the reset code
func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"password_hash":              passwordHash,
		"reset_password_otp":         nil,
		"reset_password_otp_expires": nil,
	})
}

func (r *GormUserRepository) updateColumns(ctx context.Context, id uint64, columns map[string]any) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete permanently removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
