package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/checkit/internal/credential"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/theme"
	"github.com/nhle/checkit/internal/ui/form"
	"github.com/nhle/checkit/internal/validate"
)

// mutationResultMsg is sent after a hook mutation finishes.
type mutationResultMsg struct {
	op       string
	fromForm bool
	err      error
}

// authResultMsg is sent after a sign-in, sign-up or sign-out.
type authResultMsg struct {
	user *model.User
	err  error
}

// configSavedMsg is sent after display preferences are written.
type configSavedMsg struct{ err error }

func (m Model) submitTodo(msg form.TodoSubmitMsg) (tea.Model, tea.Cmd) {
	todos := m.opts.Todos

	if msg.ID == "" {
		input, err := validate.Todo(msg.Input)
		if err != nil {
			return m, m.form.Retry(err.Error())
		}
		m.form.Close()
		return m, func() tea.Msg {
			_, err := todos.Create(context.Background(), input)
			return mutationResultMsg{op: "create todo", fromForm: true, err: err}
		}
	}

	categoryID := ""
	if msg.Input.CategoryID != nil {
		categoryID = *msg.Input.CategoryID
	}
	patch, err := validate.TodoUpdate(model.TodoPatch{
		Title:      &msg.Input.Title,
		CategoryID: &categoryID,
	})
	if err != nil {
		return m, m.form.Retry(err.Error())
	}
	m.form.Close()
	id := msg.ID
	return m, func() tea.Msg {
		_, err := todos.Update(context.Background(), id, patch)
		return mutationResultMsg{op: "update todo", fromForm: true, err: err}
	}
}

func (m Model) submitChecklistItem(msg form.ChecklistSubmitMsg) (tea.Model, tea.Cmd) {
	items := m.opts.Checklist

	if msg.ID == "" {
		input, err := validate.ChecklistItem(msg.Input)
		if err != nil {
			return m, m.form.Retry(err.Error())
		}
		m.form.Close()
		return m, func() tea.Msg {
			_, err := items.Create(context.Background(), input)
			return mutationResultMsg{op: "create checklist item", fromForm: true, err: err}
		}
	}

	patch, err := validate.ChecklistItemUpdate(model.ChecklistItemPatch{
		Title:    &msg.Input.Title,
		Quantity: emptyIfNil(msg.Input.Quantity),
		Category: &msg.Input.Category,
		Notes:    emptyIfNil(msg.Input.Notes),
	})
	if err != nil {
		return m, m.form.Retry(err.Error())
	}
	m.form.Close()
	id := msg.ID
	return m, func() tea.Msg {
		_, err := items.Update(context.Background(), id, patch)
		return mutationResultMsg{op: "update checklist item", fromForm: true, err: err}
	}
}

func (m Model) submitCategory(msg form.CategorySubmitMsg) (tea.Model, tea.Cmd) {
	cats := m.opts.Categories

	if msg.ID == "" {
		input, err := validate.Category(msg.Input)
		if err != nil {
			return m, m.form.Retry(err.Error())
		}
		m.form.Close()
		return m, func() tea.Msg {
			_, err := cats.Create(context.Background(), input)
			return mutationResultMsg{op: "create category", fromForm: true, err: err}
		}
	}

	patch, err := validate.CategoryUpdate(model.CategoryPatch{
		Name:  &msg.Input.Name,
		Color: &msg.Input.Color,
		Icon:  emptyIfNil(msg.Input.Icon),
	})
	if err != nil {
		return m, m.form.Retry(err.Error())
	}
	m.form.Close()
	id := msg.ID
	return m, func() tea.Msg {
		_, err := cats.Update(context.Background(), id, patch)
		return mutationResultMsg{op: "update category", fromForm: true, err: err}
	}
}

func (m Model) toggleTodo(id string) tea.Cmd {
	todos := m.opts.Todos
	return func() tea.Msg {
		_, err := todos.ToggleComplete(context.Background(), id)
		return mutationResultMsg{op: "toggle todo", err: err}
	}
}

func (m Model) toggleChecklistItem(id string) tea.Cmd {
	items := m.opts.Checklist
	return func() tea.Msg {
		_, err := items.ToggleComplete(context.Background(), id)
		return mutationResultMsg{op: "toggle checklist item", err: err}
	}
}

func (m Model) deleteRecord(p pendingDelete) tea.Cmd {
	var del func(ctx context.Context, id string) error
	op := "delete todo"
	switch p.tab {
	case TabChecklist:
		del, op = m.opts.Checklist.Delete, "delete checklist item"
	case TabCategories:
		del, op = m.opts.Categories.Delete, "delete category"
	default:
		del = m.opts.Todos.Delete
	}

	return func() tea.Msg {
		return mutationResultMsg{op: op, err: del(context.Background(), p.id)}
	}
}

func (m Model) authenticate(msg form.CredentialsSubmitMsg) tea.Cmd {
	provider := m.opts.Auth
	vault := m.opts.Vault
	remember := m.opts.Config.Session.Remember
	logger := m.logger

	return func() tea.Msg {
		ctx := context.Background()
		var (
			user *model.User
			err  error
		)
		if msg.SignUp {
			user, err = provider.SignUp(ctx, msg.Email, msg.Password)
		} else {
			user, err = provider.SignIn(ctx, msg.Email, msg.Password)
		}
		if err != nil {
			return authResultMsg{err: err}
		}

		if vault != nil && remember {
			if err := vault.SaveToken(provider.SessionToken()); err != nil {
				logger.Warn("remembering session", "error", err)
			}
		}
		return authResultMsg{user: user}
	}
}

func (m Model) signOut() tea.Cmd {
	provider := m.opts.Auth
	vault := m.opts.Vault
	logger := m.logger

	return func() tea.Msg {
		if err := provider.SignOut(context.Background()); err != nil {
			return authResultMsg{err: err}
		}
		if vault != nil {
			if err := vault.ClearToken(); err != nil && !errors.Is(err, credential.ErrNoToken) {
				logger.Warn("forgetting session", "error", err)
			}
		}
		return authResultMsg{}
	}
}

// toggleTheme switches the palette and saves the preference.
func (m *Model) toggleTheme() tea.Cmd {
	m.theme = theme.New(m.theme.Preference.Toggle())
	m.layout.Theme = m.theme
	m.todoList.SetTheme(m.theme)
	m.checklist.SetTheme(m.theme)
	m.categoryList.SetTheme(m.theme)
	m.form.SetTheme(m.theme)
	m.helpView.SetTheme(m.theme)

	m.opts.Config.Display.Theme = string(m.theme.Preference)
	m.opts.Config.Display.DefaultSort = string(m.todoList.SortKey())
	if m.opts.ConfigPath == "" {
		return nil
	}

	path := m.opts.ConfigPath
	cfg := *m.opts.Config
	logger := m.logger
	return func() tea.Msg {
		err := model.SaveConfig(path, &cfg)
		if err != nil {
			logger.Warn("saving preferences", "error", err)
		}
		return configSavedMsg{err: err}
	}
}

func emptyIfNil(s *string) *string {
	if s == nil {
		empty := ""
		return &empty
	}
	return s
}
