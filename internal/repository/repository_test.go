package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/inc-tasks/task-api/internal/database"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the production schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

func ptr[T any](v T) *T {
	return &v
}

func seedUser(t *testing.T, repo UserRepository, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     username,
		Role:         models.RoleUser,
		Permissions:  models.DefaultPermissions(),
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedTask(t *testing.T, db *gorm.DB, title string, status models.TaskStatus, createdAt time.Time, mutate ...func(*models.Task)) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:          title,
		Status:         status,
		Priority:       models.TaskPriorityMedium,
		AssignedBy:     1,
		AssignedByName: "Alice Admin",
		CreatedBy:      1,
		UpdatedBy:      1,
		CreatedAt:      createdAt,
	}
	for _, fn := range mutate {
		fn(task)
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
