package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns string
}

// listingIndexes back the paginated listings, which filter on one column and sort by created_at.
var listingIndexes = []indexDef{
	{"tasks", "idx_tasks_status_created_at", "status, created_at"},
	{"tasks", "idx_tasks_priority_created_at", "priority, created_at"},
	{"tasks", "idx_tasks_assigned_to_created_at", "assigned_to, created_at"},
	{"tasks", "idx_tasks_assigned_by_created_at", "assigned_by, created_at"},
	{"users", "idx_users_role_created_at", "role, created_at"},
}

// AddIndexes creates the composite listing indexes that are missing.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range listingIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
