package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/checkit/internal/auth"
	"github.com/nhle/checkit/internal/credential"
	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/keys"
	"github.com/nhle/checkit/internal/model"
	appsync "github.com/nhle/checkit/internal/sync"
	"github.com/nhle/checkit/internal/theme"
	"github.com/nhle/checkit/internal/ui"
	"github.com/nhle/checkit/internal/ui/categories"
	"github.com/nhle/checkit/internal/ui/checklist"
	"github.com/nhle/checkit/internal/ui/form"
	helpview "github.com/nhle/checkit/internal/ui/help"
	"github.com/nhle/checkit/internal/ui/todolist"
	"github.com/nhle/checkit/internal/viewmodel"
)

// Tab is one of the list views.
type Tab int

const (
	TabTodos Tab = iota
	TabChecklist
	TabCategories
)

var tabNames = []string{"Todos", "Checklist", "Categories"}

// startMsg is sent once by Init.
type startMsg struct{}

// pendingDelete is the record awaiting confirmation.
type pendingDelete struct {
	tab Tab
	id  string
}

// Options wires the root model to its collaborators.
type Options struct {
	Todos      *hooks.Todos
	Checklist  *hooks.Checklist
	Categories *hooks.Categories
	Auth       *auth.Provider

	// Vault remembers the session token. Nil disables remembering.
	Vault *credential.Vault

	Config *model.AppConfig

	// ConfigPath is where display preferences are saved. Empty disables saving.
	ConfigPath string

	Logger *slog.Logger
}

// Model is the root Bubble Tea model. It routes keys to the active tab,
// opens forms, and turns submitted forms into hook calls.
type Model struct {
	opts    Options
	logger  *slog.Logger
	watcher *appsync.Watcher
	keys    *keys.KeyMap
	theme   *theme.Theme
	layout  ui.Layout

	tab          Tab
	todoList     todolist.Model
	checklist    checklist.Model
	categoryList categories.Model
	form         form.Model
	helpView     helpview.Model
	showHelp     bool

	pending *pendingDelete
	status  string
	ready   bool
}

// New creates the root model. The hooks must already follow opts.Auth.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Config == nil {
		opts.Config = model.DefaultAppConfig()
	}

	pref, err := theme.ParsePreference(opts.Config.Display.Theme)
	if err != nil {
		opts.Logger.Warn("unknown theme, using light", "theme", opts.Config.Display.Theme)
	}
	sortKey, err := viewmodel.ParseSortKey(opts.Config.Display.DefaultSort)
	if err != nil {
		opts.Logger.Warn("unknown sort, using newest", "sort", opts.Config.Display.DefaultSort)
	}

	w := appsync.New(opts.Logger)
	w.Register("todos", opts.Todos)
	w.Register("checklist", opts.Checklist)
	w.Register("categories", opts.Categories)

	k := keys.DefaultKeyMap()
	th := theme.New(pref)
	return Model{
		opts:         opts,
		logger:       opts.Logger,
		watcher:      w,
		keys:         k,
		theme:        th,
		layout:       ui.NewLayout(80, 24, th),
		todoList:     todolist.New(k, th, sortKey, 80, 20),
		checklist:    checklist.New(k, th, 80, 20),
		categoryList: categories.New(k, th, 80, 20),
		form:         form.New(th, 80, 20),
		helpView:     helpview.New(k, th, 80, 20),
	}
}

// Init starts the change watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watcher.Start(),
		func() tea.Msg { return startMsg{} },
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height, m.theme)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.todoList.SetSize(w, h)
		m.checklist.SetSize(w, h)
		m.categoryList.SetSize(w, h)
		m.form.SetSize(w, h)
		m.helpView.SetSize(w, h)
		if m.form.Active() {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case startMsg:
		m.syncViews()
		if m.user() == nil {
			return m, m.form.StartAuth(false)
		}
		return m, nil

	case appsync.ChangedMsg:
		m.syncViews()
		return m, m.watcher.WaitForNext()

	case appsync.RefreshResultMsg:
		m.syncViews()
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case mutationResultMsg:
		return m.handleMutationResult(msg)

	case configSavedMsg:
		if msg.err != nil {
			m.status = "could not save preferences"
		}
		return m, nil

	// List view requests.
	case todolist.NewMsg:
		return m, m.form.StartTodo(nil)
	case todolist.EditMsg:
		return m, m.form.StartTodo(&msg.Todo)
	case todolist.ToggleMsg:
		return m, m.toggleTodo(msg.ID)
	case todolist.DeleteMsg:
		return m.confirmDelete(TabTodos, msg.ID, "todo", msg.Title)

	case checklist.NewMsg:
		return m, m.form.StartChecklist(nil, msg.Label)
	case checklist.EditMsg:
		return m, m.form.StartChecklist(&msg.Item, "")
	case checklist.ToggleMsg:
		return m, m.toggleChecklistItem(msg.ID)
	case checklist.DeleteMsg:
		return m.confirmDelete(TabChecklist, msg.ID, "item", msg.Title)

	case categories.NewMsg:
		return m, m.form.StartCategory(nil)
	case categories.EditMsg:
		return m, m.form.StartCategory(&msg.Category)
	case categories.DeleteMsg:
		return m.confirmDelete(TabCategories, msg.ID, "category", msg.Name)

	// Form results.
	case form.TodoSubmitMsg:
		return m.submitTodo(msg)
	case form.ChecklistSubmitMsg:
		return m.submitChecklistItem(msg)
	case form.CategorySubmitMsg:
		return m.submitCategory(msg)
	case form.CredentialsSubmitMsg:
		m.form.Close()
		m.status = ""
		return m, m.authenticate(msg)
	case form.ConfirmMsg:
		m.form.Close()
		pending := m.pending
		m.pending = nil
		if pending == nil {
			return m, nil
		}
		return m, m.deleteRecord(*pending)
	case form.CancelMsg:
		return m.handleCancel(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form.Active() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.form.Active() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.ToggleTheme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing..."
		return m, m.watcher.RefreshAll()
	case key.Matches(msg, m.keys.SignOut):
		return m, m.signOut()
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	case TabChecklist:
		m.checklist, cmd = m.checklist.Update(msg)
	case TabCategories:
		m.categoryList, cmd = m.categoryList.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCancel(msg form.CancelMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case form.KindSignIn:
		return m, m.form.StartAuth(true)
	case form.KindSignUp:
		return m, m.form.StartAuth(false)
	case form.KindConfirm:
		m.pending = nil
	}
	m.form.Close()
	return m, nil
}

func (m Model) confirmDelete(tab Tab, id, noun, title string) (tea.Model, tea.Cmd) {
	m.pending = &pendingDelete{tab: tab, id: id}
	return m, m.form.StartConfirm(fmt.Sprintf("Delete %s %q?", noun, title))
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.form.Retry(msg.err.Error())
	}

	m.syncViews()
	if msg.user == nil {
		m.tab = TabTodos
		m.status = "signed out"
		return m, m.form.StartAuth(false)
	}
	m.status = "signed in as " + msg.user.Email
	return m, nil
}

func (m Model) handleMutationResult(msg mutationResultMsg) (tea.Model, tea.Cmd) {
	m.syncViews()
	if msg.err == nil {
		m.status = ""
		return m, nil
	}

	m.logger.Warn("mutation failed", "op", msg.op, "error", msg.err)
	if msg.fromForm {
		return m, m.form.Retry(msg.err.Error())
	}
	m.status = msg.err.Error()
	return m, nil
}

// syncViews copies the current hook snapshots into every view.
func (m *Model) syncViews() {
	todos := m.opts.Todos.State()
	items := m.opts.Checklist.State()
	cats := m.opts.Categories.State()

	m.todoList.SetCategories(cats.Items)
	m.todoList.SetState(todos)
	m.checklist.SetState(items)
	m.categoryList.SetTodos(todos.Items)
	m.categoryList.SetState(cats)
	m.form.SetOptions(cats.Items, items.Items)
}

func (m Model) user() *model.User {
	return m.opts.Auth.CurrentUser()
}

func (m Model) quit() tea.Cmd {
	m.watcher.Stop()
	return tea.Quit
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	identity := "signed out"
	if u := m.user(); u != nil {
		identity = u.Email
	}
	header := m.layout.RenderHeader("checkit", identity)

	tabs := ""
	if m.user() != nil {
		tabs = m.layout.RenderTabs(tabNames, int(m.tab))
	}

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), m.layout.RenderStatusBar(m.keyHints()))
}

func (m Model) renderContent() string {
	switch {
	case m.form.Active():
		return m.form.View()
	case m.showHelp:
		return m.helpView.View()
	case m.user() == nil:
		return m.theme.Muted.Render("Sign in to see your lists.")
	}

	switch m.tab {
	case TabChecklist:
		return m.checklist.View()
	case TabCategories:
		return m.categoryList.View()
	default:
		return m.todoList.View()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.status != "" && !m.form.Active() {
		return m.status
	}

	switch {
	case m.form.Active():
		switch m.form.Kind() {
		case form.KindSignIn:
			return "enter submit | esc create account | ctrl+c quit"
		case form.KindSignUp:
			return "enter submit | esc back to sign in | ctrl+c quit"
		}
		return "enter submit | esc cancel"
	case m.showHelp:
		return "? close help | esc back"
	}

	switch m.tab {
	case TabChecklist:
		return "q quit | ? help | n new | space toggle | f filter | tab next list"
	case TabCategories:
		return "q quit | ? help | n new | e edit | d delete | tab next list"
	default:
		return "q quit | ? help | n new | space toggle | s sort | g group | tab next list"
	}
}
