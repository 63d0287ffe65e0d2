// Package form wraps the huh forms used to create and edit records, to
// confirm deletes, and to sign in.
package form

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/theme"
	"github.com/nhle/checkit/internal/validate"
	"github.com/nhle/checkit/internal/viewmodel"
)

// Kind identifies which form is open.
type Kind int

const (
	KindNone Kind = iota
	KindTodo
	KindChecklist
	KindCategory
	KindConfirm
	KindSignIn
	KindSignUp
)

// TodoSubmitMsg carries a completed todo form. ID is empty when creating.
type TodoSubmitMsg struct {
	ID    string
	Input model.CreateTodoInput
}

// ChecklistSubmitMsg carries a completed checklist item form.
type ChecklistSubmitMsg struct {
	ID    string
	Input model.CreateChecklistItemInput
}

// CategorySubmitMsg carries a completed category form.
type CategorySubmitMsg struct {
	ID    string
	Input model.CreateCategoryInput
}

// ConfirmMsg is sent when a confirmation is accepted.
type ConfirmMsg struct{}

// CredentialsSubmitMsg carries a completed sign-in or sign-up form.
type CredentialsSubmitMsg struct {
	SignUp   bool
	Email    string
	Password string
}

// CancelMsg is sent when the user aborts a form.
type CancelMsg struct{ Kind Kind }

// bindings holds field values on the heap so that huh's Value() pointers
// remain valid across Bubble Tea model copies.
type bindings struct {
	title      string
	categoryID string
	quantity   string
	label      string
	notes      string
	name       string
	color      string
	icon       string
	email      string
	password   string
	confirmed  bool
}

// Model is the form overlay.
type Model struct {
	form       *huh.Form
	fb         *bindings
	kind       Kind
	editID     string
	heading    string
	prompt     string
	err        string
	theme      *theme.Theme
	categories []model.Category
	labels     []string
	width      int
	height     int
}

// New creates an idle form overlay.
func New(th *theme.Theme, width, height int) Model {
	return Model{
		fb:     &bindings{},
		theme:  th,
		width:  width,
		height: height,
	}
}

// SetOptions sets the categories offered by the todo form and the labels
// suggested by the checklist form.
func (m *Model) SetOptions(categories []model.Category, items []model.ChecklistItem) {
	m.categories = categories
	m.labels = viewmodel.LabelSuggestions(items)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(th *theme.Theme) {
	m.theme = th
}

// Active reports whether a form is open.
func (m Model) Active() bool {
	return m.form != nil
}

// Kind returns the open form, or the last one opened.
func (m Model) Kind() Kind {
	return m.kind
}

// Close dismisses the form. The entered values are kept for Retry.
func (m *Model) Close() {
	m.form = nil
	m.err = ""
}

// StartTodo opens the todo form. A nil todo creates a new one.
func (m *Model) StartTodo(todo *model.Todo) tea.Cmd {
	*m.fb = bindings{}
	m.editID = ""
	m.heading = "New Todo"
	if todo != nil {
		m.editID = todo.ID
		m.heading = "Edit Todo"
		m.fb.title = todo.Title
		if todo.HasCategory() {
			m.fb.categoryID = *todo.CategoryID
		}
	}
	return m.open(KindTodo)
}

// StartChecklist opens the checklist item form. A nil item creates a new
// one carrying label.
func (m *Model) StartChecklist(item *model.ChecklistItem, label string) tea.Cmd {
	*m.fb = bindings{label: label}
	m.editID = ""
	m.heading = "New Item"
	if item != nil {
		m.editID = item.ID
		m.heading = "Edit Item"
		m.fb.title = item.Title
		m.fb.label = item.Category
		if item.Quantity != nil {
			m.fb.quantity = *item.Quantity
		}
		if item.Notes != nil {
			m.fb.notes = *item.Notes
		}
	}
	return m.open(KindChecklist)
}

// StartCategory opens the category form. A nil category creates a new one.
func (m *Model) StartCategory(category *model.Category) tea.Cmd {
	*m.fb = bindings{color: model.CategoryColors[0]}
	m.editID = ""
	m.heading = "New Category"
	if category != nil {
		m.editID = category.ID
		m.heading = "Edit Category"
		m.fb.name = category.Name
		m.fb.color = category.Color
		if category.Icon != nil {
			m.fb.icon = *category.Icon
		}
	}
	return m.open(KindCategory)
}

// StartConfirm asks a yes/no question.
func (m *Model) StartConfirm(prompt string) tea.Cmd {
	*m.fb = bindings{}
	m.editID = ""
	m.heading = "Confirm"
	m.prompt = prompt
	return m.open(KindConfirm)
}

// StartAuth opens the sign-in form, or the sign-up form when signUp is set.
func (m *Model) StartAuth(signUp bool) tea.Cmd {
	*m.fb = bindings{}
	m.editID = ""
	kind := KindSignIn
	m.heading = "Sign In"
	if signUp {
		kind = KindSignUp
		m.heading = "Create Account"
	}
	return m.open(kind)
}

// Retry reopens the last form with the values the user entered and an
// error message above it. It does nothing if no form was ever opened.
func (m *Model) Retry(errMsg string) tea.Cmd {
	if m.kind == KindNone {
		return nil
	}
	m.fb.password = ""
	cmd := m.open(m.kind)
	m.err = errMsg
	return cmd
}

func (m *Model) open(kind Kind) tea.Cmd {
	m.kind = kind
	m.err = ""

	var group *huh.Group
	switch kind {
	case KindTodo:
		group = huh.NewGroup(m.todoFields()...)
	case KindChecklist:
		group = huh.NewGroup(m.checklistFields()...)
	case KindCategory:
		group = huh.NewGroup(m.categoryFields()...)
	case KindConfirm:
		group = huh.NewGroup(huh.NewConfirm().
			Title(m.prompt).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&m.fb.confirmed))
	default:
		group = huh.NewGroup(m.credentialFields(kind == KindSignUp)...)
	}

	m.form = huh.NewForm(group).
		WithTheme(m.huhTheme()).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
	return m.form.Init()
}

// Update handles messages for the open form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submit()
	case huh.StateAborted:
		kind := m.kind
		return m, func() tea.Msg { return CancelMsg{Kind: kind} }
	}
	return m, cmd
}

// View renders the form with its heading and any error.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(m.theme.Palette.Text).
		MarginBottom(1).
		Render(m.heading)

	parts := []string{heading}
	if m.err != "" {
		parts = append(parts, m.theme.Error.Render(m.err))
	}
	parts = append(parts, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) todoFields() []huh.Field {
	opts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range m.categories {
		opts = append(opts, huh.NewOption(m.theme.Swatch(c.Color)+" "+c.Name, c.ID))
	}

	return []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateTodoTitle),
		huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&m.fb.categoryID),
	}
}

func (m *Model) checklistFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Item").
			Placeholder("What do you need?").
			Value(&m.fb.title).
			Validate(validateChecklistTitle),
		huh.NewInput().
			Title("Quantity").
			Placeholder("e.g. 2, 500g (optional)").
			Value(&m.fb.quantity),
		huh.NewInput().
			Title("Label").
			Placeholder(model.DefaultChecklistCategory).
			Suggestions(m.labels).
			Value(&m.fb.label),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional details...").
			Value(&m.fb.notes),
	}
}

func (m *Model) categoryFields() []huh.Field {
	colors := make([]huh.Option[string], len(model.CategoryColors))
	for i, c := range model.CategoryColors {
		colors[i] = huh.NewOption(m.theme.Swatch(c)+" "+c, c)
	}

	return []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("Work, Home, ...").
			Value(&m.fb.name).
			Validate(validateCategoryName),
		huh.NewSelect[string]().
			Title("Color").
			Options(colors...).
			Value(&m.fb.color),
		huh.NewInput().
			Title("Icon").
			Placeholder("Optional emoji").
			CharLimit(4).
			Value(&m.fb.icon),
	}
}

func (m *Model) credentialFields(signUp bool) []huh.Field {
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.fb.password)
	if signUp {
		password = password.Validate(validatePassword)
	}

	return []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(validateEmail),
		password,
	}
}

func (m Model) submit() tea.Cmd {
	fb := *m.fb
	id := m.editID

	switch m.kind {
	case KindTodo:
		input := model.CreateTodoInput{Title: fb.title}
		if fb.categoryID != "" {
			input.CategoryID = &fb.categoryID
		}
		return func() tea.Msg { return TodoSubmitMsg{ID: id, Input: input} }
	case KindChecklist:
		input := model.CreateChecklistItemInput{
			Title:    fb.title,
			Category: fb.label,
			Quantity: &fb.quantity,
			Notes:    &fb.notes,
		}
		return func() tea.Msg { return ChecklistSubmitMsg{ID: id, Input: input} }
	case KindCategory:
		input := model.CreateCategoryInput{Name: fb.name, Color: fb.color}
		if strings.TrimSpace(fb.icon) != "" {
			input.Icon = &fb.icon
		}
		return func() tea.Msg { return CategorySubmitMsg{ID: id, Input: input} }
	case KindConfirm:
		if !fb.confirmed {
			return func() tea.Msg { return CancelMsg{Kind: KindConfirm} }
		}
		return func() tea.Msg { return ConfirmMsg{} }
	case KindSignIn, KindSignUp:
		signUp := m.kind == KindSignUp
		return func() tea.Msg {
			return CredentialsSubmitMsg{SignUp: signUp, Email: fb.email, Password: fb.password}
		}
	}
	return nil
}

func (m Model) huhTheme() *huh.Theme {
	if m.theme != nil && m.theme.Preference == theme.Dark {
		return huh.ThemeDracula()
	}
	return huh.ThemeCharm()
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateTodoTitle(s string) error {
	_, err := validate.Todo(model.CreateTodoInput{Title: s})
	return fieldError(err, "title")
}

func validateChecklistTitle(s string) error {
	_, err := validate.ChecklistItem(model.CreateChecklistItemInput{Title: s})
	return fieldError(err, "title")
}

func validateCategoryName(s string) error {
	_, err := validate.Category(model.CreateCategoryInput{Name: s, Color: model.CategoryColors[0]})
	return fieldError(err, "name")
}

func validateEmail(s string) error {
	_, err := validate.Credentials(s, "placeholder")
	return fieldError(err, "email")
}

func validatePassword(s string) error {
	_, err := validate.Credentials("user@example.com", s)
	return fieldError(err, "password")
}

// fieldError reduces a validation result to the message for one field.
func fieldError(err error, field string) error {
	var violations validate.Violations
	if !errors.As(err, &violations) {
		return err
	}
	if msg := violations.Field(field); msg != "" {
		return errors.New(msg)
	}
	return nil
}
