package categories

import (
	"fmt"

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

// EditMsg asks for the edit form of a category.
type EditMsg struct{ Category model.Category }

// DeleteMsg asks to delete a category after confirmation.
type DeleteMsg struct {
	ID   string
	Name string
}

// Model lists categories with the number of todos filed under each.
type Model struct {
	keys       *keys.KeyMap
	theme      *theme.Theme
	categories []model.Category
	todos      []model.Todo
	loading    bool
	errMsg     string
	rows       []ui.Row
	cursor     ui.Cursor
	width      int
	height     int
}

// New creates an empty category view.
func New(k *keys.KeyMap, th *theme.Theme, width, height int) Model {
	return Model{keys: k, theme: th, width: width, height: height}
}

// SetState copies a hook snapshot into the view.
func (m *Model) SetState(state hooks.State[model.Category]) {
	m.categories = state.Items
	m.loading = state.Loading
	m.errMsg = state.Error
	m.rebuild()
}

// SetTodos supplies the todos counted per category.
func (m *Model) SetTodos(todos []model.Todo) {
	m.todos = todos
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

// Selected returns the category under the cursor.
func (m Model) Selected() (model.Category, bool) {
	id := m.cursor.Selected(m.rows)
	for _, c := range m.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Update handles key presses for the category list.
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
	case key.Matches(keyMsg, m.keys.Edit):
		if c, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditMsg{Category: c} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if c, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{ID: c.ID, Name: c.Name} }
		}
	}
	return m, nil
}

// View renders the category list.
func (m Model) View() string {
	lines := []string{m.theme.Muted.Render(fmt.Sprintf("%d categories", len(m.categories)))}
	if m.errMsg != "" {
		lines = append(lines, m.theme.Error.Render(m.errMsg))
	}

	switch {
	case len(m.categories) == 0 && m.loading:
		lines = append(lines, m.theme.Muted.Render("Loading categories..."))
	case len(m.categories) == 0:
		lines = append(lines, lipgloss.NewStyle().
			Width(m.width).
			Height(max(m.height-2, 1)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(m.theme.Palette.Gray).
			Render("No categories yet.\n\nPress n to create one."))
	default:
		lines = append(lines, ui.RenderRows(m.theme, m.rows, m.cursor, m.height-len(lines)-1))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) rebuild() {
	selected := m.cursor.Selected(m.rows)

	counts := make(map[string]int, len(m.categories))
	for _, g := range viewmodel.GroupTodosByCategory(m.todos, m.categories) {
		if g.Category != nil {
			counts[g.Category.ID] = len(g.Todos)
		}
	}

	rows := make([]ui.Row, 0, len(m.categories))
	for _, c := range m.categories {
		text := fmt.Sprintf("%s %s %s",
			m.theme.Swatch(c.Color),
			c.Name,
			m.theme.Muted.Render(fmt.Sprintf("(%d)", counts[c.ID])),
		)
		if c.Icon != nil && *c.Icon != "" {
			text = *c.Icon + " " + text
		}
		rows = append(rows, ui.Row{ID: c.ID, Text: text})
	}

	m.rows = rows
	m.cursor.Reset(m.rows, selected)
}
