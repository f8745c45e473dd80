package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/inc-tasks/task-api/internal/database"
	"github.com/inc-tasks/task-api/internal/models"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func testHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func createUser(t *testing.T, repo repository.UserRepository, hasher *PasswordHasher, username, email, password string) *models.User {
	t.Helper()

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         models.RoleUser,
		Permissions:  models.DefaultPermissions(),
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

type sentOTP struct {
	To   string
	Name string
	OTP  string
}

// recordingSender captures reset emails instead of sending them
type recordingSender struct {
	mu   sync.Mutex
	sent []sentOTP
	err  error
}

func (s *recordingSender) SendOTP(_ context.Context, to, name, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentOTP{To: to, Name: name, OTP: otp})
	return nil
}

func (s *recordingSender) last() sentOTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

func ptr[T any](v T) *T {
	return &v
}
