package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420421

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetPostgresTable drops and recreates table with rows users.
func ResetPostgresTable(ctx context.Context, pool *pgxpool.Pool, table string, rows int) error {
	ident := pq.QuoteIdentifier(table)

	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := pool.Exec(ctx, "CREATE TABLE "+ident+" (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE)"); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	for i := 0; i < rows; i++ {
		_, err := pool.Exec(ctx,
			"INSERT INTO "+ident+" (id, email) VALUES ($1, $2)",
			fmt.Sprintf("user-%d", i),
			fmt.Sprintf("user-%d@example.com", i),
		)
		if err != nil {
			return fmt.Errorf("seed %s: %w", table, err)
		}
	}

	return nil
}

// DropPostgresTable removes table if it exists.
func DropPostgresTable(ctx context.Context, pool *pgxpool.Pool, table string) error {
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	return nil
}

// NewSQLiteDatabase creates a SQLite file in a temp dir holding a users table
// with rows entries, and returns its file: URL.
func NewSQLiteDatabase(t testing.TB, rows int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "probe.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE)`); err != nil {
		t.Fatalf("create users: %v", err)
	}
	for i := 0; i < rows; i++ {
		_, err := db.Exec(`INSERT INTO users (id, email) VALUES (?, ?)`,
			fmt.Sprintf("user-%d", i),
			fmt.Sprintf("user-%d@example.com", i),
		)
		if err != nil {
			t.Fatalf("seed users: %v", err)
		}
	}

	return "file:" + path
}
