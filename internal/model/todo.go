package model

import "time"

// Todo is a simple task owned by a single user.
type Todo struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Completed  bool      `json:"completed" db:"completed"`
	CategoryID *string   `json:"category_id,omitempty" db:"category_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTodoInput carries the caller-supplied fields of a new todo.
type CreateTodoInput struct {
	Title      string  `json:"title" validate:"required"`
	CategoryID *string `json:"category_id,omitempty"`
}

// TodoPatch is a partial update. Nil fields are left unchanged.
// A CategoryID pointing at an empty string clears the category.
type TodoPatch struct {
	Title      *string `json:"title,omitempty" validate:"omitnil,required"`
	Completed  *bool   `json:"completed,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// HasCategory reports whether the todo references a category.
func (t Todo) HasCategory() bool {
	return t.CategoryID != nil && *t.CategoryID != ""
}
