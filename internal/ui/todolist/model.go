package todolist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/keys"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/theme"
	"github.com/nhle/checkit/internal/ui"
	"github.com/nhle/checkit/internal/viewmodel"
)

// NewMsg asks for the create form.
type NewMsg struct{}

// ToggleMsg asks to flip the completion of a todo.
type ToggleMsg struct{ ID string }

// EditMsg asks for the edit form of a todo.
type EditMsg struct{ Todo model.Todo }

// DeleteMsg asks to delete a todo after confirmation.
type DeleteMsg struct {
	ID    string
	Title string
}

// Model is the todo list view.
type Model struct {
	keys       *keys.KeyMap
	theme      *theme.Theme
	todos      []model.Todo
	categories []model.Category
	loading    bool
	errMsg     string
	sortKey    viewmodel.SortKey
	grouped    bool
	rows       []ui.Row
	cursor     ui.Cursor
	width      int
	height     int
}

// New creates an empty todo list view.
func New(k *keys.KeyMap, th *theme.Theme, sortKey viewmodel.SortKey, width, height int) Model {
	return Model{
		keys:    k,
		theme:   th,
		sortKey: sortKey,
		width:   width,
		height:  height,
	}
}

// SetState copies a hook snapshot into the view.
func (m *Model) SetState(state hooks.State[model.Todo]) {
	m.todos = state.Items
	m.loading = state.Loading
	m.errMsg = state.Error
	m.rebuild()
}

// SetCategories supplies the categories used for badges and grouping.
func (m *Model) SetCategories(categories []model.Category) {
	m.categories = categories
	m.rebuild()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(th *theme.Theme) {
	m.theme = th
	m.rebuild()
}

// SortKey returns the active ordering.
func (m Model) SortKey() viewmodel.SortKey { return m.sortKey }

// Selected returns the todo under the cursor.
func (m Model) Selected() (model.Todo, bool) {
	id := m.cursor.Selected(m.rows)
	for _, t := range m.todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Update handles key presses for the todo list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor.Move(m.rows, 1)
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor.Move(m.rows, -1)
	case key.Matches(keyMsg, m.keys.New):
		return m, func() tea.Msg { return NewMsg{} }
	case key.Matches(keyMsg, m.keys.Toggle):
		if todo, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleMsg{ID: todo.ID} }
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if todo, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditMsg{Todo: todo} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if todo, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{ID: todo.ID, Title: todo.Title} }
		}
	case key.Matches(keyMsg, m.keys.CycleSort):
		m.sortKey = m.sortKey.Next()
		m.rebuild()
	case key.Matches(keyMsg, m.keys.Group):
		m.grouped = !m.grouped
		m.rebuild()
	}
	return m, nil
}

// View renders the todo list.
func (m Model) View() string {
	counts := viewmodel.Summary(m.todos)
	mode := m.sortKey.Label()
	if m.grouped {
		mode += " · by category"
	}
	summary := m.theme.Muted.Render(fmt.Sprintf(
		"%d active · %d done · %s", counts.Active, counts.Completed, mode,
	))

	lines := []string{summary}
	if m.errMsg != "" {
		lines = append(lines, m.theme.Error.Render(m.errMsg))
	}

	switch {
	case len(m.todos) == 0 && m.loading:
		lines = append(lines, m.theme.Muted.Render("Loading todos..."))
	case len(m.todos) == 0 && !m.grouped:
		lines = append(lines, m.renderEmptyState())
	default:
		listHeight := m.height - len(lines) - 1
		lines = append(lines, ui.RenderRows(m.theme, m.rows, m.cursor, listHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(m.theme.Palette.Gray).
		Render("No todos yet.\n\nPress n to add one.")
}

func (m *Model) rebuild() {
	selected := m.cursor.Selected(m.rows)
	var rows []ui.Row

	if m.grouped {
		for _, g := range viewmodel.GroupTodosByCategory(m.todos, m.categories) {
			header := fmt.Sprintf("%s (%d)", g.Name(), len(g.Todos))
			if g.Category != nil {
				header = m.theme.Swatch(g.Category.Color) + " " + header
			}
			rows = append(rows, ui.Row{Text: header, Header: true})
			active, completed := m.order(g.Todos)
			for _, t := range append(active, completed...) {
				rows = append(rows, m.row(t, false))
			}
		}
	} else {
		active, completed := m.order(m.todos)
		for _, t := range active {
			rows = append(rows, m.row(t, true))
		}
		if len(completed) > 0 {
			rows = append(rows, ui.Row{
				Text:   fmt.Sprintf("Completed Tasks (%d)", len(completed)),
				Header: true,
			})
			for _, t := range completed {
				rows = append(rows, m.row(t, true))
			}
		}
	}

	m.rows = rows
	m.cursor.Reset(m.rows, selected)
}

// order splits todos into active and completed. The default ordering shows
// new work first and finished work in the order it was added.
func (m Model) order(todos []model.Todo) (active, completed []model.Todo) {
	if m.sortKey == viewmodel.SortNewest {
		return viewmodel.DisplayOrder(todos)
	}
	active, completed = viewmodel.Partition(todos)
	return viewmodel.Sort(active, m.sortKey), viewmodel.Sort(completed, m.sortKey)
}

func (m Model) row(t model.Todo, badge bool) ui.Row {
	title := t.Title
	if t.Completed {
		title = m.theme.Completed.Render(title)
	}

	parts := []string{m.theme.Checkbox(t.Completed), title}
	if badge && t.HasCategory() {
		if cat, ok := m.category(*t.CategoryID); ok {
			parts = append(parts, m.theme.Badge(cat.Name, cat.Color))
		}
	}
	return ui.Row{ID: t.ID, Text: strings.Join(parts, " ")}
}

func (m Model) category(id string) (model.Category, bool) {
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}
