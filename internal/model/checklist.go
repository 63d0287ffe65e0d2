package model

import "time"

// DefaultChecklistCategory is the label applied to checklist items
// created without one.
const DefaultChecklistCategory = "general"

// ChecklistItem is a shopping/checklist entry. Unlike Todo, its category
// is a free-text label rather than a reference to a Category row.
type ChecklistItem struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Quantity  *string   `json:"quantity,omitempty" db:"quantity"`
	Category  string    `json:"category" db:"category"`
	Completed bool      `json:"completed" db:"completed"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateChecklistItemInput carries the caller-supplied fields of a new item.
type CreateChecklistItemInput struct {
	Title    string  `json:"title" validate:"required"`
	Quantity *string `json:"quantity,omitempty"`
	Category string  `json:"category,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ChecklistItemPatch is a partial update. Nil fields are left unchanged.
type ChecklistItemPatch struct {
	Title     *string `json:"title,omitempty" validate:"omitnil,required"`
	Quantity  *string `json:"quantity,omitempty"`
	Category  *string `json:"category,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
