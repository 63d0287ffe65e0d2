package hooks_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
	"github.com/nhle/checkit/internal/testutil"
)

// mockStore wraps a real store; any Func that is set replaces the call.
type mockStore struct {
	store.Store

	ListTodosFunc  func(ctx context.Context, ownerID string) ([]model.Todo, error)
	InsertTodoFunc func(ctx context.Context, todo model.Todo) (model.Todo, error)
	UpdateTodoFunc func(ctx context.Context, ownerID, id string, patch model.TodoPatch) (model.Todo, error)

	updateCalls atomic.Int32
}

func (m *mockStore) ListTodos(ctx context.Context, ownerID string) ([]model.Todo, error) {
	if m.ListTodosFunc != nil {
		return m.ListTodosFunc(ctx, ownerID)
	}
	return m.Store.ListTodos(ctx, ownerID)
}

func (m *mockStore) InsertTodo(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if m.InsertTodoFunc != nil {
		return m.InsertTodoFunc(ctx, todo)
	}
	return m.Store.InsertTodo(ctx, todo)
}

func (m *mockStore) UpdateTodo(ctx context.Context, ownerID, id string, patch model.TodoPatch) (model.Todo, error) {
	m.updateCalls.Add(1)
	if m.UpdateTodoFunc != nil {
		return m.UpdateTodoFunc(ctx, ownerID, id, patch)
	}
	return m.Store.UpdateTodo(ctx, ownerID, id, patch)
}

type fixture struct {
	store *mockStore
	user  *model.User
	todos *hooks.Todos
}

func newFixture(t *testing.T, opts hooks.Options) *fixture {
	t.Helper()
	s := &mockStore{Store: testutil.NewTestStore(t)}
	user := testutil.NewTestUser(t, s)

	todos := hooks.NewTodos(s, opts)
	t.Cleanup(todos.Close)
	require.NoError(t, todos.Reset(context.Background(), user))

	return &fixture{store: s, user: user, todos: todos}
}

func (f *fixture) create(t *testing.T, title string) model.Todo {
	t.Helper()
	todo, err := f.todos.Create(context.Background(), model.CreateTodoInput{Title: title})
	require.NoError(t, err)
	return todo
}

func titles(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.Title
	}
	return out
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}
