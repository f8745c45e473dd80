package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lowercase LIKE pattern matching term anywhere, with wildcards in term escaped by '!'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// searchColumns ORs a case-insensitive substring match over columns.
func searchColumns(db *gorm.DB, term string, columns ...string) *gorm.DB {
	pattern := containsPattern(term)

	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(COALESCE(" + col + ", '')) LIKE ? ESCAPE '!'"
		args[i] = pattern
	}

	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
