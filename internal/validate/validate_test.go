package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/model"
)

func strPtr(s string) *string { return &s }

func TestTodo(t *testing.T) {
	tests := []struct {
		name      string
		in        model.CreateTodoInput
		wantTitle string
		wantField string
	}{
		{name: "trims title", in: model.CreateTodoInput{Title: "  Buy milk "}, wantTitle: "Buy milk"},
		{name: "empty title", in: model.CreateTodoInput{Title: ""}, wantField: "title"},
		{name: "blank title", in: model.CreateTodoInput{Title: "   "}, wantField: "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Todo(tt.in)
			if tt.wantField != "" {
				var violations Violations
				require.True(t, errors.As(err, &violations))
				assert.NotEmpty(t, violations.Field(tt.wantField))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, got.Title)
		})
	}
}

func TestTodoBlankCategoryBecomesNil(t *testing.T) {
	got, err := Todo(model.CreateTodoInput{Title: "x", CategoryID: strPtr(" ")})
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestTodoUpdate(t *testing.T) {
	_, err := TodoUpdate(model.TodoPatch{Title: strPtr(" ")})
	var violations Violations
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, "title is required", violations.Field("title"))

	got, err := TodoUpdate(model.TodoPatch{CategoryID: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, "", *got.CategoryID)

	got, err = TodoUpdate(model.TodoPatch{})
	require.NoError(t, err)
	assert.Nil(t, got.Title)
}

func TestChecklistItemDefaultsCategory(t *testing.T) {
	got, err := ChecklistItem(model.CreateChecklistItemInput{Title: "Eggs", Category: "  "})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChecklistCategory, got.Category)

	got, err = ChecklistItem(model.CreateChecklistItemInput{Title: "Eggs", Category: " dairy ", Quantity: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "dairy", got.Category)
	assert.Nil(t, got.Quantity)

	patch, err := ChecklistItemUpdate(model.ChecklistItemPatch{Category: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultChecklistCategory, *patch.Category)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name      string
		in        model.CreateCategoryInput
		wantField string
	}{
		{name: "valid", in: model.CreateCategoryInput{Name: "Work", Color: "#3B82F6"}},
		{name: "lowercase hex", in: model.CreateCategoryInput{Name: "Work", Color: "#3b82f6"}},
		{name: "missing name", in: model.CreateCategoryInput{Color: "#3B82F6"}, wantField: "name"},
		{name: "name too long", in: model.CreateCategoryInput{Name: strings.Repeat("a", 51), Color: "#3B82F6"}, wantField: "name"},
		{name: "short hex", in: model.CreateCategoryInput{Name: "Work", Color: "#FFF"}, wantField: "color"},
		{name: "no hash", in: model.CreateCategoryInput{Name: "Work", Color: "3B82F6"}, wantField: "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Category(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var violations Violations
			require.True(t, errors.As(err, &violations))
			assert.NotEmpty(t, violations.Field(tt.wantField))
		})
	}
}

func TestCategoryUpdateColor(t *testing.T) {
	_, err := CategoryUpdate(model.CategoryPatch{Color: strPtr("red")})
	var violations Violations
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, "invalid color format", violations.Field("color"))

	_, err = CategoryUpdate(model.CategoryPatch{Name: strPtr("Home")})
	assert.NoError(t, err)
}

func TestCredentials(t *testing.T) {
	email, err := Credentials(" Ann@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)

	_, err = Credentials("not-an-email", "12345")
	var violations Violations
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, "invalid email address", violations.Field("email"))
	assert.Equal(t, "password must be at least 6 characters", violations.Field("password"))
}
