package model

import "time"

// Category groups todos. Todos reference it by ID; deleting a category
// leaves those references in place.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Icon      *string   `json:"icon,omitempty" db:"icon"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateCategoryInput carries the caller-supplied fields of a new category.
type CreateCategoryInput struct {
	Name  string  `json:"name" validate:"required,max=50"`
	Color string  `json:"color" validate:"required,rgbhex"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryPatch is a partial update. Nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitnil,required,max=50"`
	Color *string `json:"color,omitempty" validate:"omitnil,rgbhex"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryColors are the preset swatches offered by the category form.
var CategoryColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#84CC16", // lime
	"#F97316", // orange
	"#6B7280", // gray
}
