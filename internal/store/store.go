package store

import (
	"context"

	"github.com/nhle/checkit/internal/model"
)

// Store defines the owner-scoped persistence interface for todos,
// checklist items, categories, and the users that own them.
//
// Every list, update and delete is filtered by owner id. Lists are ordered
// by created_at ascending. Update and delete return an error wrapping
// model.ErrNotFound when no row matches both id and owner.
type Store interface {
	// === Todos ===

	ListTodos(ctx context.Context, ownerID string) ([]model.Todo, error)
	InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error)
	UpdateTodo(ctx context.Context, ownerID, id string, patch model.TodoPatch) (model.Todo, error)
	DeleteTodo(ctx context.Context, ownerID, id string) error

	// === Checklist items ===

	ListChecklistItems(ctx context.Context, ownerID string) ([]model.ChecklistItem, error)
	InsertChecklistItem(ctx context.Context, item model.ChecklistItem) (model.ChecklistItem, error)
	UpdateChecklistItem(ctx context.Context, ownerID, id string, patch model.ChecklistItemPatch) (model.ChecklistItem, error)
	DeleteChecklistItem(ctx context.Context, ownerID, id string) error

	// === Categories ===

	ListCategories(ctx context.Context, ownerID string) ([]model.Category, error)
	InsertCategory(ctx context.Context, category model.Category) (model.Category, error)
	UpdateCategory(ctx context.Context, ownerID, id string, patch model.CategoryPatch) (model.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error

	// === Users ===

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
