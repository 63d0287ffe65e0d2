package hooks

import (
	"context"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
)

// Todos is the hook for todos.
type Todos struct {
	*Hook[model.Todo, model.CreateTodoInput, model.TodoPatch]
}

// NewTodos returns a signed-out todos hook backed by s.
func NewTodos(s store.Store, opts Options) *Todos {
	return &Todos{newHook[model.Todo, model.CreateTodoInput, model.TodoPatch](todoResource{s}, "todo", "todos", opts)}
}

// ToggleComplete flips the completion flag of the todo with id.
func (t *Todos) ToggleComplete(ctx context.Context, id string) (model.Todo, error) {
	return t.toggle(ctx, id, func(current model.Todo) model.TodoPatch {
		completed := !current.Completed
		return model.TodoPatch{Completed: &completed}
	})
}

// Checklist is the hook for checklist items.
type Checklist struct {
	*Hook[model.ChecklistItem, model.CreateChecklistItemInput, model.ChecklistItemPatch]
}

// NewChecklist returns a signed-out checklist hook backed by s.
func NewChecklist(s store.Store, opts Options) *Checklist {
	return &Checklist{newHook[model.ChecklistItem, model.CreateChecklistItemInput, model.ChecklistItemPatch](
		checklistResource{s}, "checklist item", "checklist items", opts,
	)}
}

// ToggleComplete flips the completion flag of the item with id.
func (c *Checklist) ToggleComplete(ctx context.Context, id string) (model.ChecklistItem, error) {
	return c.toggle(ctx, id, func(current model.ChecklistItem) model.ChecklistItemPatch {
		completed := !current.Completed
		return model.ChecklistItemPatch{Completed: &completed}
	})
}

// Categories is the hook for categories.
type Categories struct {
	*Hook[model.Category, model.CreateCategoryInput, model.CategoryPatch]
}

// NewCategories returns a signed-out categories hook backed by s.
func NewCategories(s store.Store, opts Options) *Categories {
	return &Categories{newHook[model.Category, model.CreateCategoryInput, model.CategoryPatch](
		categoryResource{s}, "category", "categories", opts,
	)}
}

type todoResource struct{ s store.Store }

func (r todoResource) List(ctx context.Context, ownerID string) ([]model.Todo, error) {
	return r.s.ListTodos(ctx, ownerID)
}

func (r todoResource) Insert(ctx context.Context, ownerID string, in model.CreateTodoInput) (model.Todo, error) {
	todo := model.Todo{
		Title:     in.Title,
		Completed: false,
		UserID:    ownerID,
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		todo.CategoryID = in.CategoryID
	}
	return r.s.InsertTodo(ctx, todo)
}

func (r todoResource) Update(ctx context.Context, ownerID, id string, patch model.TodoPatch) (model.Todo, error) {
	return r.s.UpdateTodo(ctx, ownerID, id, patch)
}

func (r todoResource) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.DeleteTodo(ctx, ownerID, id)
}

type checklistResource struct{ s store.Store }

func (r checklistResource) List(ctx context.Context, ownerID string) ([]model.ChecklistItem, error) {
	return r.s.ListChecklistItems(ctx, ownerID)
}

func (r checklistResource) Insert(
	ctx context.Context,
	ownerID string,
	in model.CreateChecklistItemInput,
) (model.ChecklistItem, error) {
	category := in.Category
	if category == "" {
		category = model.DefaultChecklistCategory
	}
	return r.s.InsertChecklistItem(ctx, model.ChecklistItem{
		Title:     in.Title,
		Quantity:  in.Quantity,
		Category:  category,
		Completed: false,
		Notes:     in.Notes,
		UserID:    ownerID,
	})
}

func (r checklistResource) Update(
	ctx context.Context,
	ownerID, id string,
	patch model.ChecklistItemPatch,
) (model.ChecklistItem, error) {
	return r.s.UpdateChecklistItem(ctx, ownerID, id, patch)
}

func (r checklistResource) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.DeleteChecklistItem(ctx, ownerID, id)
}

type categoryResource struct{ s store.Store }

func (r categoryResource) List(ctx context.Context, ownerID string) ([]model.Category, error) {
	return r.s.ListCategories(ctx, ownerID)
}

func (r categoryResource) Insert(ctx context.Context, ownerID string, in model.CreateCategoryInput) (model.Category, error) {
	return r.s.InsertCategory(ctx, model.Category{
		Name:   in.Name,
		Color:  in.Color,
		Icon:   in.Icon,
		UserID: ownerID,
	})
}

func (r categoryResource) Update(
	ctx context.Context,
	ownerID, id string,
	patch model.CategoryPatch,
) (model.Category, error) {
	return r.s.UpdateCategory(ctx, ownerID, id, patch)
}

func (r categoryResource) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.DeleteCategory(ctx, ownerID, id)
}
