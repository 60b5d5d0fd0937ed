package db_test

import (
	"context"
	"testing"

	"statement-engine/internal/db"
)

func TestNewPool_EmptyConnStr(t *testing.T) {
	if _, err := db.NewPool(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty connection string")
	}
}

func TestNewPool_MalformedConnStr(t *testing.T) {
	if _, err := db.NewPool(context.Background(), "://not-a-url"); err == nil {
		t.Fatal("expected error for malformed connection string")
	}
}
