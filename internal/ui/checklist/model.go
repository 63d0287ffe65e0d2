package checklist

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

// NewMsg asks for the create form, pre-filled with the active label.
type NewMsg struct{ Label string }

// ToggleMsg asks to flip the completion of an item.
type ToggleMsg struct{ ID string }

// EditMsg asks for the edit form of an item.
type EditMsg struct{ Item model.ChecklistItem }

// DeleteMsg asks to delete an item after confirmation.
type DeleteMsg struct {
	ID    string
	Title string
}

// Model is the checklist view. Items are filtered by label and split into
// to-get and done sections.
type Model struct {
	keys    *keys.KeyMap
	theme   *theme.Theme
	items   []model.ChecklistItem
	loading bool
	errMsg  string
	label   string
	rows    []ui.Row
	cursor  ui.Cursor
	width   int
	height  int
}

// New creates an empty checklist view showing every label.
func New(k *keys.KeyMap, th *theme.Theme, width, height int) Model {
	return Model{
		keys:   k,
		theme:  th,
		label:  viewmodel.AllLabel,
		width:  width,
		height: height,
	}
}

// SetState copies a hook snapshot into the view. A filter on a label that
// no longer exists falls back to all.
func (m *Model) SetState(state hooks.State[model.ChecklistItem]) {
	m.items = state.Items
	m.loading = state.Loading
	m.errMsg = state.Error
	if m.label != viewmodel.AllLabel && !m.hasLabel(m.label) {
		m.label = viewmodel.AllLabel
	}
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

// Label returns the active label filter.
func (m Model) Label() string { return m.label }

// Selected returns the item under the cursor.
func (m Model) Selected() (model.ChecklistItem, bool) {
	id := m.cursor.Selected(m.rows)
	for _, it := range m.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.ChecklistItem{}, false
}

// Update handles key presses for the checklist.
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
		label := ""
		if m.label != viewmodel.AllLabel {
			label = m.label
		}
		return m, func() tea.Msg { return NewMsg{Label: label} }
	case key.Matches(keyMsg, m.keys.Toggle):
		if it, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleMsg{ID: it.ID} }
		}
	case key.Matches(keyMsg, m.keys.Edit):
		if it, ok := m.Selected(); ok {
			return m, func() tea.Msg { return EditMsg{Item: it} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if it, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{ID: it.ID, Title: it.Title} }
		}
	case key.Matches(keyMsg, m.keys.CycleFilter):
		m.label = m.nextLabel()
		m.cursor = ui.Cursor{}
		m.rebuild()
	}
	return m, nil
}

// View renders the filter bar and the two sections.
func (m Model) View() string {
	lines := []string{m.renderFilters()}
	if m.errMsg != "" {
		lines = append(lines, m.theme.Error.Render(m.errMsg))
	}

	switch {
	case len(m.items) == 0 && m.loading:
		lines = append(lines, m.theme.Muted.Render("Loading checklist..."))
	case len(m.items) == 0:
		lines = append(lines, lipgloss.NewStyle().
			Width(m.width).
			Height(max(m.height-2, 1)).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(m.theme.Palette.Gray).
			Render("Your checklist is empty.\n\nPress n to add an item."))
	default:
		lines = append(lines, ui.RenderRows(m.theme, m.rows, m.cursor, m.height-len(lines)-1))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderFilters() string {
	counts := viewmodel.CountByLabel(m.items)
	parts := make([]string, len(counts))
	for i, lc := range counts {
		text := fmt.Sprintf("%s (%d)", lc.Label, lc.Count)
		if lc.Label == m.label {
			parts[i] = m.theme.ActiveTab.Render(text)
		} else {
			parts[i] = m.theme.Tab.Render(text)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) nextLabel() string {
	counts := viewmodel.CountByLabel(m.items)
	for i, lc := range counts {
		if lc.Label == m.label {
			return counts[(i+1)%len(counts)].Label
		}
	}
	return viewmodel.AllLabel
}

func (m Model) hasLabel(label string) bool {
	for _, it := range m.items {
		if it.Category == label {
			return true
		}
	}
	return false
}

func (m *Model) rebuild() {
	selected := m.cursor.Selected(m.rows)
	active, completed := viewmodel.Partition(viewmodel.FilterByLabel(m.items, m.label))

	var rows []ui.Row
	if len(active) > 0 {
		rows = append(rows, ui.Row{Text: fmt.Sprintf("To get (%d)", len(active)), Header: true})
		for _, it := range active {
			rows = append(rows, m.row(it))
		}
	}
	if len(completed) > 0 {
		rows = append(rows, ui.Row{Text: fmt.Sprintf("Done (%d)", len(completed)), Header: true})
		for _, it := range completed {
			rows = append(rows, m.row(it))
		}
	}

	m.rows = rows
	m.cursor.Reset(m.rows, selected)
}

func (m Model) row(it model.ChecklistItem) ui.Row {
	title := it.Title
	if it.Completed {
		title = m.theme.Completed.Render(title)
	}

	parts := []string{m.theme.Checkbox(it.Completed), title}
	if it.Quantity != nil && *it.Quantity != "" {
		parts = append(parts, m.theme.Muted.Render("×"+*it.Quantity))
	}
	if m.label == viewmodel.AllLabel {
		parts = append(parts, m.theme.Badge(it.Category, string(m.theme.Palette.Accent)))
	}
	if it.Notes != nil && *it.Notes != "" {
		parts = append(parts, m.theme.Muted.Render("· "+*it.Notes))
	}
	return ui.Row{ID: it.ID, Text: strings.Join(parts, " ")}
}
