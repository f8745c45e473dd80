package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
	"github.com/inc-tasks/task-api/internal/middleware"
	"github.com/inc-tasks/task-api/internal/services"
)

// bindJSON decodes the request body into req, answering 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		apierrors.BadRequest(c, validationMessage(verrs[0]))
		return false
	}

	apierrors.BadRequest(c, apierrors.MsgInvalidInput)
	return false
}

func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	default:
		return fmt.Sprintf("Invalid value for %s", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// parseID reads a positive numeric id
func parseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// actorFromContext builds the mutation actor from the authenticated identity
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{
		ID:    identity.UserID,
		Name:  identity.DisplayName(),
		Admin: identity.IsAdmin(),
	}, true
}
