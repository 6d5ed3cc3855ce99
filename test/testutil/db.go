package testutil

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/spapperi/ragserver/internal/config"
	"github.com/spapperi/ragserver/internal/db"
)

func OpenTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "rag",
		Password: "rag_pass",
		DBName:   "rag_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.EnsureSchema(conn); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := conn.Exec(`DELETE FROM documents`); err != nil {
		t.Fatalf("clean documents: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
