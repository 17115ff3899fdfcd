package repository

import (
	"context"
	"errors"
	"testing"
)

func TestMongo_ConnectMissingDatabase(t *testing.T) {
	client := NewMongo("mongodb://localhost:27017")

	err := client.Connect(context.Background())
	if !errors.Is(err, ErrMissingDatabase) {
		t.Fatalf("expected ErrMissingDatabase, got %v", err)
	}
	if err := client.Disconnect(context.Background()); err != nil {
		t.Errorf("expected Disconnect to be a no-op, got %v", err)
	}
}

func TestMongo_ConnectInvalidURI(t *testing.T) {
	client := NewMongo("mongodb://localhost:27017/app?connectTimeoutMS=abc")

	if err := client.Connect(context.Background()); err == nil {
		t.Fatal("expected error for invalid URI")
	}
}

func TestMongo_CountBeforeConnect(t *testing.T) {
	client := NewMongo("mongodb://localhost:27017/app")

	if _, err := client.Count(context.Background(), "users"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}
