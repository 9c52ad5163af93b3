package session

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/unowned-ai/aoa/pkg/db"
	"github.com/unowned-ai/aoa/pkg/journal"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db.Progress = io.Discard

	testDB, err := db.OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	if err := db.InitializeSchema(testDB, db.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })
	return testDB
}

func TestGetItem_Missing(t *testing.T) {
	s := NewStore(setupTestDB(t))

	_, err := s.GetItem(context.Background(), "nope")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestSetItem_Replaces(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := s.SetItem(ctx, "theme", "light"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := s.SetItem(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	got, err := s.GetItem(ctx, "theme")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got != "dark" {
		t.Errorf("Expected 'dark', got %q", got)
	}
}

func TestRemoveItemAndKeys(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		if err := s.SetItem(ctx, k, "v"); err != nil {
			t.Fatalf("SetItem(%s) failed: %v", k, err)
		}
	}
	if err := s.RemoveItem(ctx, "b"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := s.RemoveItem(ctx, "never-set"); err != nil {
		t.Fatalf("RemoveItem of a missing key should succeed, got %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Errorf("Expected [a c], got %v", keys)
	}
}

func TestLoadUser_Anonymous(t *testing.T) {
	s := NewStore(setupTestDB(t))

	user, err := s.LoadUser(context.Background())
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if user != nil {
		t.Errorf("Expected no user, got %+v", user)
	}
}

func TestSaveUser_RoundTrip(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	created := journal.Timestamp{Time: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)}
	want := journal.User{ID: 7, Email: "ada@example.com", Name: "Ada", Timezone: "Europe/London", CreatedAt: created}

	if err := s.SaveUser(ctx, want); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got, err := s.LoadUser(ctx)
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a stored user, got nil")
	}
	if got.ID != want.ID || got.Email != want.Email || got.Name != want.Name || got.Timezone != want.Timezone {
		t.Errorf("Stored user mismatch: got %+v, want %+v", *got, want)
	}
	if !got.CreatedAt.Equal(created.Time) {
		t.Errorf("CreatedAt mismatch: got %s", got.CreatedAt)
	}

	// Signing up again replaces the record wholesale.
	if err := s.SaveUser(ctx, journal.User{ID: 8, Email: "b@example.com"}); err != nil {
		t.Fatalf("SaveUser replace failed: %v", err)
	}
	got, err = s.LoadUser(ctx)
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if got.ID != 8 || got.Name != "" {
		t.Errorf("Expected replaced user, got %+v", *got)
	}
}

func TestLoadUser_Corrupt(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := s.SetItem(ctx, UserKey, "{not json"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	_, err := s.LoadUser(ctx)
	if !errors.Is(err, ErrCorruptUser) {
		t.Fatalf("Expected ErrCorruptUser, got %v", err)
	}
}

func TestClearUser(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()

	if err := s.SaveUser(ctx, journal.User{ID: 1, Email: "x@example.com"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := s.ClearUser(ctx); err != nil {
		t.Fatalf("ClearUser failed: %v", err)
	}

	user, err := s.LoadUser(ctx)
	if err != nil {
		t.Fatalf("LoadUser failed: %v", err)
	}
	if user != nil {
		t.Errorf("Expected user to be cleared, got %+v", *user)
	}
}
