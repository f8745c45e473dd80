package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/dto"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/middleware"
	"github.com/inc-tasks/task-api/internal/services"
	"github.com/inc-tasks/task-api/internal/utils"
)

// UserHandler serves account registration, profiles and the admin user console.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers an account. When the caller is authenticated it is recorded as the creator.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	var creator *services.Actor
	if actor, ok := actorFromContext(c); ok {
		creator = &actor
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		Role:        req.Role,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Name:        req.Name,
		Permissions: req.Permissions,
	}, creator)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success("User created successfully", dto.ToUserDTO(*user)))
}

// GetProfile returns the caller's own account.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	h.respondUser(c, userID)
}

// UpdateProfile applies a self-service update. Role and permissions are refused.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	h.update(c, userID, userID, false)
}

// DeleteProfile removes the caller's own account.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, middleware.MsgTokenRequired)
		return
	}
	h.remove(c, userID)
}

// ListUsers returns a page of users, optionally filtered by ?search=
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.userService.ListUsers(c.Request.Context(), params.Page, params.Limit, c.Query("search"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	respondUserPage(c, page)
}

// ListUsersByRole returns a page of users holding :role
func (h *UserHandler) ListUsersByRole(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.userService.ListUsersByRole(c.Request.Context(), c.Param("role"), params.Page, params.Limit)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	respondUserPage(c, page)
}

// GetUserByUsername looks an account up by :username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("User retrieved successfully", dto.ToUserDTO(*user)))
}

// AdminGetUser returns any account, addressed by :id or ?id=
func (h *UserHandler) AdminGetUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}
	h.respondUser(c, id)
}

// AdminUpdateUser updates any account, including role and permissions.
func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserID(c)
	h.update(c, id, actorID, true)
}

// AdminDeleteUser removes any account.
func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	id, ok := targetUserID(c)
	if !ok {
		return
	}
	h.remove(c, id)
}

func (h *UserHandler) respondUser(c *gin.Context, id uint64) {
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("User retrieved successfully", dto.ToUserDTO(*user)))
}

func (h *UserHandler) update(c *gin.Context, id, actorID uint64, privileged bool) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Name:        req.Name,
		Role:        req.Role,
		Permissions: req.Permissions,
	}, actorID, privileged)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("User updated successfully", dto.ToUserDTO(*user)))
}

func (h *UserHandler) remove(c *gin.Context, id uint64) {
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		apierrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success("User deleted successfully", nil))
}

func respondUserPage(c *gin.Context, page *services.UserPage) {
	response := dto.Success("Users retrieved successfully", dto.ToUserDTOs(page.Users))
	response.Pagination = dto.UserPagination(page.PageInfo)
	c.JSON(http.StatusOK, response)
}

// targetUserID reads the id from the path, falling back to the query string
func targetUserID(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		apierrors.BadRequest(c, "User ID is required")
		return 0, false
	}

	id, ok := parseID(raw)
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return id, true
}
