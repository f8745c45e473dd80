package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inc-tasks/task-api/internal/constants"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/inc-tasks/task-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles user account business logic.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, hasher *PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// CreateUserInput holds the fields accepted at registration.
// Name is split on its first space when FirstName and LastName are empty.
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	Role        string
	FirstName   string
	LastName    string
	Name        string
	Permissions []string
}

// UpdateUserInput holds optional changes. Nil fields are left untouched.
type UpdateUserInput struct {
	Username    *string
	Password    *string
	Email       *string
	FirstName   *string
	LastName    *string
	Name        *string
	Role        *string
	Permissions []string
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users []models.User
	utils.PageInfo
}

// CreateUser validates and registers a new account. creator is nil for anonymous sign-ups,
// which may only create plain users.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput, creator *Actor) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	role := models.RoleUser
	if strings.TrimSpace(input.Role) != "" {
		parsed, err := parseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	if role == models.RoleAdmin && (creator == nil || !creator.Admin) {
		return nil, ErrAdminOnlyRole
	}

	permissions, err := parsePermissions(input.Permissions)
	if err != nil {
		return nil, err
	}
	if len(permissions) == 0 {
		permissions = defaultPermissionsFor(role)
	}

	firstName, lastName := strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName)
	if firstName == "" && lastName == "" {
		firstName, lastName = splitName(input.Name)
	}

	if err := s.ensureUnique(ctx, email, username, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Permissions:  permissions,
	}
	if creator != nil {
		user.CreatedBy = &creator.ID
		user.UpdatedBy = &creator.ID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateDuplicate(err, "failed to create user")
	}

	return user, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUserByUsername returns a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns users newest first, optionally filtered by a search term.
func (s *UserService) ListUsers(ctx context.Context, page, limit int, search string) (*UserPage, error) {
	return s.list(ctx, repository.UserFilter{Search: search}, page, limit)
}

// ListUsersByRole returns users holding role.
func (s *UserService) ListUsersByRole(ctx context.Context, role string, page, limit int) (*UserPage, error) {
	parsed := models.Role(strings.ToLower(strings.TrimSpace(role)))
	if !parsed.Valid() {
		return nil, ErrInvalidRoleFilter
	}
	return s.list(ctx, repository.UserFilter{Role: &parsed}, page, limit)
}

func (s *UserService) list(ctx context.Context, filter repository.UserFilter, page, limit int) (*UserPage, error) {
	params := utils.NewPaginationParams(page, limit)
	filter.Page, filter.Limit = params.Page, params.Limit

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserPage{Users: users, PageInfo: utils.NewPageInfo(params, total)}, nil
}

// UpdateUser applies input to user id. Role and permission changes need privileged.
func (s *UserService) UpdateUser(ctx context.Context, id uint64, input UpdateUserInput, actorID uint64, privileged bool) (*models.User, error) {
	if !privileged && (input.Role != nil || input.Permissions != nil) {
		return nil, ErrPrivilegedUpdate
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	email, username := user.Email, user.Username
	if input.Email != nil {
		if email = normalizeEmail(*input.Email); email == "" {
			return nil, ErrEmailRequired
		}
	}
	if input.Username != nil {
		if username = strings.TrimSpace(*input.Username); username == "" {
			return nil, ErrUsernameRequired
		}
	}
	if err := s.ensureUnique(ctx, email, username, user.ID); err != nil {
		return nil, err
	}
	user.Email, user.Username = email, username

	if input.Name != nil && input.FirstName == nil && input.LastName == nil {
		user.FirstName, user.LastName = splitName(*input.Name)
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	if input.Role != nil {
		role, err := parseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		user.Role = role
	}
	if input.Permissions != nil {
		permissions, err := parsePermissions(input.Permissions)
		if err != nil {
			return nil, err
		}
		user.Permissions = permissions
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if actorID != 0 {
		user.UpdatedBy = &actorID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, translateDuplicate(err, "failed to update user")
	}

	return user, nil
}

// DeleteUser permanently removes a user. Tasks referencing the user are left as they are.
func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) ensureUnique(ctx context.Context, email, username string, excludeID uint64) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return ErrUsernameExists
	}
	return nil
}

// translateDuplicate maps unique index violations raised by the store to the same
// conflicts the pre-checks return.
func translateDuplicate(err error, action string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailExists
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameExists
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func parseRole(raw string) (models.Role, error) {
	role := models.Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func parsePermissions(raw []string) ([]models.Permission, error) {
	permissions := make([]models.Permission, 0, len(raw))
	seen := make(map[models.Permission]bool, len(raw))
	for _, value := range raw {
		p := models.Permission(strings.TrimSpace(value))
		if !p.Valid() {
			return nil, apierrors.Validation(fmt.Sprintf("Invalid permission value: %s", value))
		}
		if !seen[p] {
			seen[p] = true
			permissions = append(permissions, p)
		}
	}
	return permissions, nil
}

func defaultPermissionsFor(role models.Role) []models.Permission {
	if role == models.RoleAdmin {
		return []models.Permission{models.PermissionRead, models.PermissionWrite, models.PermissionAdmin}
	}
	return models.DefaultPermissions()
}

func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
