package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nhle/checkit/internal/model"
)

// ListChecklistItems returns the owner's checklist items, oldest first.
func (s *SQLiteStore) ListChecklistItems(ctx context.Context, ownerID string) ([]model.ChecklistItem, error) {
	items := []model.ChecklistItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT "+checklistColumns+" FROM checklist_items WHERE user_id = ? ORDER BY created_at ASC, rowid ASC",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying checklist items: %w", err)
	}
	return items, nil
}

// InsertChecklistItem inserts a new checklist item and returns the stored row.
// An empty category is stored as the default label.
func (s *SQLiteStore) InsertChecklistItem(
	ctx context.Context,
	item model.ChecklistItem,
) (model.ChecklistItem, error) {
	if strings.TrimSpace(item.Title) == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item title must not be empty")
	}
	if item.UserID == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item owner must not be empty")
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Category == "" {
		item.Category = model.DefaultChecklistCategory
	}
	ts := now()

	var stored model.ChecklistItem
	err := s.db.GetContext(ctx, &stored, `
		INSERT INTO checklist_items (
			id, title, quantity, category, completed, notes,
			user_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+checklistColumns,
		item.ID, item.Title, nullableString(item.Quantity), item.Category,
		boolToInt(item.Completed), nullableString(item.Notes),
		item.UserID, ts, ts,
	)
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("adding checklist item: %w", err)
	}
	return stored, nil
}

// UpdateChecklistItem applies a partial update to one of the owner's items.
func (s *SQLiteStore) UpdateChecklistItem(
	ctx context.Context,
	ownerID, id string,
	patch model.ChecklistItemPatch,
) (model.ChecklistItem, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.ChecklistItem{}, fmt.Errorf("checklist item title must not be empty")
	}

	var stored model.ChecklistItem
	err := s.updateReturning(ctx, &stored, "checklist_items", checklistColumns, ownerID, id, checklistAssignments(patch))
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("updating checklist item %s: %w", id, err)
	}
	return stored, nil
}

// DeleteChecklistItem removes one of the owner's checklist items.
func (s *SQLiteStore) DeleteChecklistItem(ctx context.Context, ownerID, id string) error {
	if err := s.deleteScoped(ctx, "checklist_items", ownerID, id); err != nil {
		return fmt.Errorf("deleting checklist item %s: %w", id, err)
	}
	return nil
}
