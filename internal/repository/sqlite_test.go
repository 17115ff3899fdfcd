package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/penshort/dbprobe/internal/testutil"
)

func TestSQLite_Count(t *testing.T) {
	ctx := context.Background()
	dsn := testutil.NewSQLiteDatabase(t, 3)

	client, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	count, err := client.Count(ctx, "users")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	again, err := client.Count(ctx, "users")
	if err != nil {
		t.Fatalf("second Count failed: %v", err)
	}
	if again != count {
		t.Errorf("expected stable count %d, got %d", count, again)
	}
}

func TestSQLite_MissingTable(t *testing.T) {
	ctx := context.Background()
	dsn := testutil.NewSQLiteDatabase(t, 1)

	client, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if _, err := client.Count(ctx, "missing"); err == nil {
		t.Fatal("expected error counting a missing table")
	}

	if err := client.Disconnect(ctx); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if _, err := client.Count(ctx, "users"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected after disconnect, got %v", err)
	}
}

func TestSQLite_MissingFileNotCreated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "typo.db")

	client, err := Open("file:" + path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := client.Connect(ctx); err == nil {
		client.Disconnect(ctx)
		t.Fatal("expected Connect to fail for a missing database file")
	}
	if err := client.Disconnect(ctx); err != nil {
		t.Errorf("expected Disconnect to be a no-op, got %v", err)
	}

	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %s not to be created, stat err = %v", path, err)
	}
}
