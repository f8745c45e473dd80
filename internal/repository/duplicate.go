package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateEmail is returned when the users.email unique index rejects a write.
	ErrDuplicateEmail = errors.New("user repository: duplicate email")
	// ErrDuplicateUsername is returned when the users.username unique index rejects a write.
	ErrDuplicateUsername = errors.New("user repository: duplicate username")
)

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
)

// duplicateKeyName reports whether err is a unique constraint violation from any supported
// driver and returns the name of the offending index or column. The rejected value itself is
// never part of the result.
func duplicateKeyName(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// Duplicate entry '<value>' for key '<table>.<index>'
		_, key, found := cutLast(myErr.Message, " for key ")
		if !found {
			return "", true
		}
		return strings.Trim(key, "'`"), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolation {
		if pgErr.ConstraintName != "" {
			return pgErr.ConstraintName, true
		}
		// Key (<column>)=(<value>) already exists.
		if rest, ok := strings.CutPrefix(pgErr.Detail, "Key ("); ok {
			column, _, _ := strings.Cut(rest, ")")
			return column, true
		}
		return "", true
	}

	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		// UNIQUE constraint failed: <table>.<column>
		_, column, _ := strings.Cut(msg, "UNIQUE constraint failed:")
		return strings.TrimSpace(column), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	return "", false
}

func cutLast(s, sep string) (string, string, bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// translateUserWriteError maps unique index violations on users to the field-specific sentinels.
func translateUserWriteError(err error) error {
	key, ok := duplicateKeyName(err)
	if !ok {
		return err
	}

	if isEmailKey(key) {
		return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
	}
	return fmt.Errorf("%w: %v", ErrDuplicateUsername, err)
}

// isEmailKey matches idx_users_email, users.idx_users_email and users.email.
func isEmailKey(key string) bool {
	key = strings.ToLower(key)
	return key == "email" || strings.HasSuffix(key, ".email") || strings.HasSuffix(key, "_email")
}
