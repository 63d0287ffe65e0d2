package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestUser inserts a user with a random email into s.
func NewTestUser(t *testing.T, s store.Store) *model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return &user
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
