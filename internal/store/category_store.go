package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/checkit/internal/model"
)

// ListCategories returns the owner's categories, oldest first.
func (s *SQLiteStore) ListCategories(ctx context.Context, ownerID string) ([]model.Category, error) {
	categories := []model.Category{}
	err := s.db.SelectContext(ctx, &categories,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = ? ORDER BY created_at ASC, rowid ASC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	return categories, nil
}

// InsertCategory inserts a new category and returns the stored row.
func (s *SQLiteStore) InsertCategory(ctx context.Context, category model.Category) (model.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return model.Category{}, fmt.Errorf("category name must not be empty")
	}
	if category.UserID == "" {
		return model.Category{}, fmt.Errorf("category owner must not be empty")
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	ts := now()

	var stored model.Category
	err := s.db.GetContext(ctx, &stored, `
		INSERT INTO categories (id, name, color, icon, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+categoryColumns,
		category.ID, category.Name, category.Color, nullableString(category.Icon),
		category.UserID, ts, ts,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return stored, nil
}

// UpdateCategory applies a partial update to one of the owner's categories.
func (s *SQLiteStore) UpdateCategory(
	ctx context.Context,
	ownerID, id string,
	patch model.CategoryPatch,
) (model.Category, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Category{}, fmt.Errorf("category name must not be empty")
	}

	var stored model.Category
	err := s.updateReturning(ctx, &stored, "categories", categoryColumns, ownerID, id, categoryAssignments(patch))
	if err != nil {
		return model.Category{}, fmt.Errorf("updating category %s: %w", id, err)
	}
	return stored, nil
}

// DeleteCategory removes one of the owner's categories. Todos that
// reference it keep their category_id.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "categories", ownerID, id); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}
