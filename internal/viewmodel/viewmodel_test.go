package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/model"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func todo(id, title string, minute int, completed bool, categoryID string) model.Todo {
	td := model.Todo{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: t0.Add(time.Duration(minute) * time.Minute),
	}
	if categoryID != "" {
		td.CategoryID = &categoryID
	}
	return td
}

func item(id, title, label string, completed bool) model.ChecklistItem {
	return model.ChecklistItem{ID: id, Title: title, Category: label, Completed: completed, CreatedAt: t0}
}

func titlesOf(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

func TestSortScenario(t *testing.T) {
	todos := []model.Todo{
		todo("1", "Buy milk", 1, false, ""),
		todo("2", "Call dentist", 2, false, ""),
	}

	assert.Equal(t, []string{"Call dentist", "Buy milk"}, titlesOf(Sort(todos, SortNewest)))
	assert.Equal(t, []string{"Buy milk", "Call dentist"}, titlesOf(Sort(todos, SortTitleAsc)))
	assert.Equal(t, []string{"Buy milk", "Call dentist"}, titlesOf(Sort(todos, SortOldest)))
	assert.Equal(t, []string{"Call dentist", "Buy milk"}, titlesOf(Sort(todos, SortTitleDesc)))

	// Input is untouched.
	assert.Equal(t, "Buy milk", todos[0].Title)
}

func TestSortIsStablePermutationAndIdempotent(t *testing.T) {
	todos := []model.Todo{
		todo("a", "same", 3, false, ""),
		todo("b", "Zeta", 1, false, ""),
		todo("c", "SAME", 2, true, ""),
		todo("d", "alpha", 4, false, ""),
		todo("e", "same", 0, false, ""),
	}

	for _, key := range []SortKey{SortTitleAsc, SortTitleDesc} {
		t.Run(string(key), func(t *testing.T) {
			sorted := Sort(todos, key)
			assert.ElementsMatch(t, todos, sorted)
			assert.Equal(t, sorted, Sort(sorted, key))
		})
	}

	asc := Sort(todos, SortTitleAsc)
	ids := make([]string, len(asc))
	for i, td := range asc {
		ids[i] = td.ID
	}
	assert.Equal(t, []string{"d", "a", "c", "e", "b"}, ids)
}

func TestSortEmpty(t *testing.T) {
	assert.Empty(t, Sort([]model.Todo(nil), SortNewest))
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{in: "", want: SortNewest},
		{in: "oldest", want: SortOldest},
		{in: "Title_Asc", want: SortTitleAsc},
		{in: "title_desc", want: SortTitleDesc},
		{in: "priority", want: SortNewest, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSortKey(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, SortNewest, SortTitleDesc.Next())
}

func TestPartitionAndDisplayOrder(t *testing.T) {
	todos := []model.Todo{
		todo("1", "old done", 1, true, ""),
		todo("2", "old open", 2, false, ""),
		todo("3", "new done", 3, true, ""),
		todo("4", "new open", 4, false, ""),
	}

	active, completed := Partition(todos)
	assert.Equal(t, []string{"old open", "new open"}, titlesOf(active))
	assert.Equal(t, []string{"old done", "new done"}, titlesOf(completed))

	active, completed = DisplayOrder(todos)
	assert.Equal(t, []string{"new open", "old open"}, titlesOf(active))
	assert.Equal(t, []string{"old done", "new done"}, titlesOf(completed))

	assert.Equal(t, Counts{Total: 4, Completed: 2, Active: 2}, Summary(todos))
}

func TestGroupTodosByCategory(t *testing.T) {
	categories := []model.Category{
		{ID: "work", Name: "Work"},
		{ID: "home", Name: "Home"},
		{ID: "empty", Name: "Empty"},
	}
	todos := []model.Todo{
		todo("1", "report", 1, false, "work"),
		todo("2", "dishes", 2, false, "home"),
		todo("3", "loose", 3, false, ""),
		todo("4", "orphan", 4, false, "deleted"),
		todo("5", "review", 5, true, "work"),
	}

	groups := GroupTodosByCategory(todos, categories)
	require.Len(t, groups, 4)

	assert.Equal(t, "Work", groups[0].Name())
	assert.Equal(t, []string{"report", "review"}, titlesOf(groups[0].Todos))
	assert.Equal(t, "Home", groups[1].Name())
	assert.Equal(t, "Empty", groups[2].Name())
	assert.Empty(t, groups[2].Todos)
	assert.Nil(t, groups[3].Category)
	assert.Equal(t, "Uncategorized", groups[3].Name())
	assert.Equal(t, []string{"loose", "orphan"}, titlesOf(groups[3].Todos))

	total := 0
	for _, g := range groups {
		total += len(g.Todos)
	}
	assert.Equal(t, len(todos), total)
}

func TestGroupTodosWithoutCategories(t *testing.T) {
	groups := GroupTodosByCategory([]model.Todo{todo("1", "x", 0, false, "gone")}, nil)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Todos, 1)
}

func TestChecklistLabels(t *testing.T) {
	items := []model.ChecklistItem{
		item("1", "Milk", "dairy", false),
		item("2", "Bread", "general", true),
		item("3", "Cheese", "dairy", false),
		item("4", "Apples", "produce", false),
	}

	assert.Equal(t, []string{"dairy", "general", "produce"}, ChecklistLabels(items))
	assert.Equal(t, []LabelCount{
		{Label: AllLabel, Count: 4},
		{Label: "dairy", Count: 2},
		{Label: "general", Count: 1},
		{Label: "produce", Count: 1},
	}, CountByLabel(items))

	assert.Len(t, FilterByLabel(items, AllLabel), 4)
	dairy := FilterByLabel(items, "dairy")
	require.Len(t, dairy, 2)
	assert.Equal(t, "Milk", dairy[0].Title)
	assert.Empty(t, FilterByLabel(items, "frozen"))

	groups := GroupChecklistByLabel(items)
	require.Len(t, groups, 3)
	assert.Equal(t, "dairy", groups[0].Label)
	assert.Len(t, groups[0].Items, 2)
}

func TestCountByLabelEmpty(t *testing.T) {
	assert.Equal(t, []LabelCount{{Label: AllLabel, Count: 0}}, CountByLabel(nil))
	assert.Equal(t, []string{"general"}, LabelSuggestions(nil))
}
