package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/constants"
	apierrors "github.com/inc-tasks/task-api/internal/errors"
)

// Recovery turns panics into a 500 envelope
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					slog.Any("error", err),
					slog.String("request_id", c.GetString(constants.ContextKeyRequestID)),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.InternalError(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
