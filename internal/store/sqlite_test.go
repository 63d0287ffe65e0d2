package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
	"github.com/nhle/checkit/internal/testutil"
)

func TestTodoLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	created, err := s.InsertTodo(ctx, model.Todo{Title: "Buy milk", UserID: user.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.Nil(t, created.CategoryID)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := s.UpdateTodo(ctx, user.ID, created.ID, model.TodoPatch{
		Completed: testutil.BoolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	todos, err := s.ListTodos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].Completed)

	require.NoError(t, s.DeleteTodo(ctx, user.ID, created.ID))
	todos, err = s.ListTodos(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestListTodosOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.InsertTodo(ctx, model.Todo{Title: title, UserID: user.ID})
		require.NoError(t, err)
	}

	todos, err := s.ListTodos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "first", todos[0].Title)
	assert.Equal(t, "second", todos[1].Title)
	assert.Equal(t, "third", todos[2].Title)
}

func TestRecordsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	alice := testutil.NewTestUser(t, s)
	bob := testutil.NewTestUser(t, s)

	todo, err := s.InsertTodo(ctx, model.Todo{Title: "alice's", UserID: alice.ID})
	require.NoError(t, err)

	todos, err := s.ListTodos(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, todos)

	_, err = s.UpdateTodo(ctx, bob.ID, todo.ID, model.TodoPatch{Title: testutil.StrPtr("stolen")})
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = s.DeleteTodo(ctx, bob.ID, todo.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	todos, err = s.ListTodos(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "alice's", todos[0].Title)
}

func TestUpdateTodoCategory(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	todo, err := s.InsertTodo(ctx, model.Todo{Title: "Call dentist", UserID: user.ID})
	require.NoError(t, err)

	updated, err := s.UpdateTodo(ctx, user.ID, todo.ID, model.TodoPatch{CategoryID: testutil.StrPtr("cat-1")})
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, "cat-1", *updated.CategoryID)

	cleared, err := s.UpdateTodo(ctx, user.ID, todo.ID, model.TodoPatch{CategoryID: testutil.StrPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cleared.CategoryID)
}

func TestInsertTodoRejectsEmptyTitle(t *testing.T) {
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	_, err := s.InsertTodo(context.Background(), model.Todo{Title: "   ", UserID: user.ID})
	assert.Error(t, err)
}

func TestChecklistItemDefaultsAndPatch(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	item, err := s.InsertChecklistItem(ctx, model.ChecklistItem{
		Title:    "Eggs",
		Quantity: testutil.StrPtr("12"),
		UserID:   user.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChecklistCategory, item.Category)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, "12", *item.Quantity)
	assert.Nil(t, item.Notes)

	updated, err := s.UpdateChecklistItem(ctx, user.ID, item.ID, model.ChecklistItemPatch{
		Category:  testutil.StrPtr("dairy"),
		Notes:     testutil.StrPtr("free range"),
		Quantity:  testutil.StrPtr(""),
		Completed: testutil.BoolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "dairy", updated.Category)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "free range", *updated.Notes)
	assert.Nil(t, updated.Quantity)
	assert.True(t, updated.Completed)

	require.NoError(t, s.DeleteChecklistItem(ctx, user.ID, item.ID))
	err = s.DeleteChecklistItem(ctx, user.ID, item.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	cat, err := s.InsertCategory(ctx, model.Category{Name: "Work", Color: "#3B82F6", UserID: user.ID})
	require.NoError(t, err)
	assert.Nil(t, cat.Icon)

	todo, err := s.InsertTodo(ctx, model.Todo{Title: "Report", CategoryID: &cat.ID, UserID: user.ID})
	require.NoError(t, err)

	renamed, err := s.UpdateCategory(ctx, user.ID, cat.ID, model.CategoryPatch{Name: testutil.StrPtr("Office")})
	require.NoError(t, err)
	assert.Equal(t, "Office", renamed.Name)
	assert.Equal(t, "#3B82F6", renamed.Color)

	require.NoError(t, s.DeleteCategory(ctx, user.ID, cat.ID))

	categories, err := s.ListCategories(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, categories)

	// The todo keeps its now-dangling reference.
	todos, err := s.ListTodos(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.ID, todos[0].ID)
	require.NotNil(t, todos[0].CategoryID)
	assert.Equal(t, cat.ID, *todos[0].CategoryID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.CreateUser(ctx, model.User{Email: "Ann@Example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, model.User{Email: "ann@example.com", PasswordHash: "y"})
	assert.True(t, errors.Is(err, store.ErrDuplicate))

	found, err := s.GetUserByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", found.Email)

	byID, err := s.GetUserByID(ctx, found.ID)
	require.NoError(t, err)
	assert.Equal(t, found.Email, byID.Email)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkit.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	user, err := s.CreateUser(context.Background(), model.User{Email: "a@b.co", PasswordHash: "x"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", found.Email)
}
