package test_utils

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
)

// CreateTestUser inserts a user row and returns its id. Repository tests need
// a real owner because of the foreign key constraints.
func CreateTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO user (uid, username, display_name, password_hash) VALUES (?, ?, ?, ?)",
		uuid.NewString(), username, username, "not-a-real-hash",
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user id: %v", err)
	}
	return int(id)
}
