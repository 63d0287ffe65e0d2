package viewmodel

import (
	"slices"

	"github.com/nhle/checkit/internal/model"
)

// AllLabel is the checklist filter that matches every item.
const AllLabel = "all"

// TodoGroup is one category section of the todo list. Category is nil for
// the uncategorized group.
type TodoGroup struct {
	Category *model.Category
	Todos    []model.Todo
}

// Name returns the category name, or "Uncategorized".
func (g TodoGroup) Name() string {
	if g.Category == nil {
		return "Uncategorized"
	}
	return g.Category.Name
}

// GroupTodosByCategory returns one group per category, in the given
// category order and including empty ones, followed by an uncategorized
// group. Todos whose category is unset or no longer exists land in the
// uncategorized group.
func GroupTodosByCategory(todos []model.Todo, categories []model.Category) []TodoGroup {
	groups := make([]TodoGroup, 0, len(categories)+1)
	index := make(map[string]int, len(categories))
	for i := range categories {
		cat := categories[i]
		index[cat.ID] = len(groups)
		groups = append(groups, TodoGroup{Category: &cat, Todos: []model.Todo{}})
	}

	uncategorized := TodoGroup{Todos: []model.Todo{}}
	for _, todo := range todos {
		if todo.HasCategory() {
			if i, ok := index[*todo.CategoryID]; ok {
				groups[i].Todos = append(groups[i].Todos, todo)
				continue
			}
		}
		uncategorized.Todos = append(uncategorized.Todos, todo)
	}

	return append(groups, uncategorized)
}

// LabelCount is the number of checklist items carrying Label.
type LabelCount struct {
	Label string
	Count int
}

// ChecklistLabels returns the distinct labels in use, sorted.
func ChecklistLabels(items []model.ChecklistItem) []string {
	seen := make(map[string]struct{})
	labels := []string{}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		labels = append(labels, it.Category)
	}
	slices.Sort(labels)
	return labels
}

// LabelSuggestions returns the labels offered by the checklist form.
func LabelSuggestions(items []model.ChecklistItem) []string {
	labels := ChecklistLabels(items)
	if len(labels) == 0 {
		return []string{model.DefaultChecklistCategory}
	}
	return labels
}

// CountByLabel returns AllLabel first, then one entry per label in sorted
// order. The AllLabel count is the sum of the per-label counts.
func CountByLabel(items []model.ChecklistItem) []LabelCount {
	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Category]++
	}

	labels := ChecklistLabels(items)
	out := make([]LabelCount, 0, len(labels)+1)
	out = append(out, LabelCount{Label: AllLabel})
	for _, label := range labels {
		out = append(out, LabelCount{Label: label, Count: counts[label]})
		out[0].Count += counts[label]
	}
	return out
}

// FilterByLabel keeps items carrying label. AllLabel and "" keep everything.
func FilterByLabel(items []model.ChecklistItem, label string) []model.ChecklistItem {
	if label == "" || label == AllLabel {
		return slices.Clone(items)
	}
	out := []model.ChecklistItem{}
	for _, it := range items {
		if it.Category == label {
			out = append(out, it)
		}
	}
	return out
}

// ChecklistGroup is one label section of the checklist.
type ChecklistGroup struct {
	Label string
	Items []model.ChecklistItem
}

// GroupChecklistByLabel groups items by label, labels sorted, item order kept.
func GroupChecklistByLabel(items []model.ChecklistItem) []ChecklistGroup {
	labels := ChecklistLabels(items)
	index := make(map[string]int, len(labels))
	groups := make([]ChecklistGroup, len(labels))
	for i, label := range labels {
		index[label] = i
		groups[i] = ChecklistGroup{Label: label, Items: []model.ChecklistItem{}}
	}
	for _, it := range items {
		i := index[it.Category]
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}
