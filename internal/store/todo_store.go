package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/checkit/internal/model"
)

// ListTodos returns the owner's todos, oldest first.
func (s *SQLiteStore) ListTodos(ctx context.Context, ownerID string) ([]model.Todo, error) {
	todos := []model.Todo{}
	err := s.db.SelectContext(ctx, &todos,
		"SELECT "+todoColumns+" FROM todos WHERE user_id = ? ORDER BY created_at ASC, rowid ASC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	return todos, nil
}

// InsertTodo inserts a new todo and returns the stored row.
// Generates a UUID if ID is empty; timestamps are always assigned here.
func (s *SQLiteStore) InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if strings.TrimSpace(todo.Title) == "" {
		return model.Todo{}, fmt.Errorf("todo title must not be empty")
	}
	if todo.UserID == "" {
		return model.Todo{}, fmt.Errorf("todo owner must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	ts := now()

	var stored model.Todo
	err := s.db.GetContext(ctx, &stored, `
		INSERT INTO todos (id, title, completed, category_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+todoColumns,
		todo.ID, todo.Title, boolToInt(todo.Completed), nullableString(todo.CategoryID),
		todo.UserID, ts, ts,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("creating todo: %w", err)
	}
	return stored, nil
}

// UpdateTodo applies a partial update to one of the owner's todos.
func (s *SQLiteStore) UpdateTodo(
	ctx context.Context,
	ownerID, id string,
	patch model.TodoPatch,
) (model.Todo, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Todo{}, fmt.Errorf("todo title must not be empty")
	}

	var stored model.Todo
	err := s.updateReturning(ctx, &stored, "todos", todoColumns, ownerID, id, todoAssignments(patch))
	if err != nil {
		return model.Todo{}, fmt.Errorf("updating todo %s: %w", id, err)
	}
	return stored, nil
}

// DeleteTodo removes one of the owner's todos.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "todos", ownerID, id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return nil
}
