package hooks_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/testutil"
)

func TestFetchWithoutUserIsNoop(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := hooks.NewTodos(s, hooks.Options{})
	defer todos.Close()

	require.NoError(t, todos.Fetch(context.Background()))
	state := todos.State()
	assert.Empty(t, state.Items)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}

func TestFetchIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	f.create(t, "one")
	f.create(t, "two")
	f.create(t, "three")

	require.NoError(t, f.todos.Fetch(ctx))
	first := f.todos.State().Items
	require.NoError(t, f.todos.Refetch(ctx))
	second := f.todos.State().Items

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"one", "two", "three"}, titles(second))
}

func TestFetchFailureKeepsItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	f.create(t, "kept")

	f.store.ListTodosFunc = func(context.Context, string) ([]model.Todo, error) {
		return nil, errors.New("connection refused")
	}
	err := f.todos.Fetch(ctx)

	var remote *hooks.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "fetch", remote.Op)

	state := f.todos.State()
	assert.Equal(t, []string{"kept"}, titles(state.Items))
	assert.Equal(t, "failed to fetch todos: connection refused", state.Error)
	assert.False(t, state.Loading)

	// A later successful fetch clears the error.
	f.store.ListTodosFunc = nil
	require.NoError(t, f.todos.Fetch(ctx))
	assert.Empty(t, f.todos.State().Error)
}

func TestCreateAppendsAtTail(t *testing.T) {
	f := newFixture(t, hooks.Options{})
	f.create(t, "first")

	created := f.create(t, "second")
	assert.Equal(t, f.user.ID, created.UserID)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.ID)

	items := f.todos.State().Items
	require.Len(t, items, 2)
	assert.Equal(t, created, items[1])

	count := 0
	for _, it := range items {
		if it.ID == created.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCreateWithoutUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	todos := hooks.NewTodos(s, hooks.Options{})
	defer todos.Close()

	_, err := todos.Create(context.Background(), model.CreateTodoInput{Title: "x"})
	assert.True(t, errors.Is(err, model.ErrAuthenticationRequired))

	state := todos.State()
	assert.Empty(t, state.Items)
	assert.Empty(t, state.Error)
}

func TestCreateFailureSetsError(t *testing.T) {
	f := newFixture(t, hooks.Options{})
	f.store.InsertTodoFunc = func(context.Context, model.Todo) (model.Todo, error) {
		return model.Todo{}, errors.New("permission denied")
	}

	_, err := f.todos.Create(context.Background(), model.CreateTodoInput{Title: "x"})
	var remote *hooks.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "create", remote.Op)
	assert.Equal(t, "failed to create todo: permission denied", f.todos.State().Error)
	assert.Empty(t, f.todos.State().Items)
}

func TestUpdateKeepsPositionAndFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	f.create(t, "a")
	b := f.create(t, "b")
	f.create(t, "c")

	_, err := f.todos.ToggleComplete(ctx, b.ID)
	require.NoError(t, err)

	updated, err := f.todos.Update(ctx, b.ID, model.TodoPatch{Title: testutil.StrPtr("B")})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.True(t, b.CreatedAt.Equal(updated.CreatedAt))

	items := f.todos.State().Items
	assert.Equal(t, []string{"a", "B", "c"}, titles(items))
	assert.True(t, items[1].Completed)
}

func TestUpdateWithoutUser(t *testing.T) {
	todos := hooks.NewTodos(testutil.NewTestStore(t), hooks.Options{})
	defer todos.Close()

	_, err := todos.Update(context.Background(), "id", model.TodoPatch{})
	assert.True(t, errors.Is(err, model.ErrAuthenticationRequired))
	assert.True(t, errors.Is(todos.Delete(context.Background(), "id"), model.ErrAuthenticationRequired))
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	todo := f.create(t, "flip")

	first, err := f.todos.ToggleComplete(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, first.Completed)

	second, err := f.todos.ToggleComplete(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, second.Completed)
	assert.False(t, f.todos.State().Items[0].Completed)
}

func TestConcurrentTogglesAreSerialized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	todo := f.create(t, "race")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.todos.ToggleComplete(ctx, todo.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, f.todos.State().Items[0].Completed)
	require.NoError(t, f.todos.Fetch(ctx))
	assert.False(t, f.todos.State().Items[0].Completed)
}

func TestToggleMissingIDMakesNoRemoteCall(t *testing.T) {
	f := newFixture(t, hooks.Options{})

	_, err := f.todos.ToggleComplete(context.Background(), "missing")
	assert.True(t, errors.Is(err, hooks.ErrItemNotFound))
	assert.Zero(t, f.store.updateCalls.Load())
	assert.Empty(t, f.todos.State().Error)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	f.create(t, "keep")
	doomed := f.create(t, "doomed")

	require.NoError(t, f.todos.Delete(ctx, doomed.ID))
	assert.Equal(t, []string{"keep"}, titles(f.todos.State().Items))

	err := f.todos.Delete(ctx, doomed.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	state := f.todos.State()
	assert.Len(t, state.Items, 1)
	assert.Contains(t, state.Error, "failed to delete todo")
}

func TestTimeoutSurfacesAsError(t *testing.T) {
	f := newFixture(t, hooks.Options{Timeout: 20 * time.Millisecond})
	todo := f.create(t, "slow")

	f.store.UpdateTodoFunc = func(ctx context.Context, _, _ string, _ model.TodoPatch) (model.Todo, error) {
		<-ctx.Done()
		return model.Todo{}, errors.New("interrupted")
	}

	_, err := f.todos.ToggleComplete(context.Background(), todo.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	var remote *hooks.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.True(t, remote.Timeout)

	state := f.todos.State()
	assert.Equal(t, "failed to update todo: operation timed out", state.Error)
	assert.False(t, state.Loading)
	assert.False(t, state.Items[0].Completed)
}

func TestLoadingWhileInFlight(t *testing.T) {
	f := newFixture(t, hooks.Options{})
	release := make(chan struct{})
	started := make(chan struct{})
	f.store.InsertTodoFunc = func(ctx context.Context, todo model.Todo) (model.Todo, error) {
		close(started)
		<-release
		return f.store.Store.InsertTodo(ctx, todo)
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.todos.Create(context.Background(), model.CreateTodoInput{Title: "pending"})
		done <- err
	}()

	<-started
	assert.True(t, f.todos.State().Loading)
	close(release)
	require.NoError(t, <-done)

	state := f.todos.State()
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"pending"}, titles(state.Items))
}

func TestResetDropsStaleCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, hooks.Options{})
	other := testutil.NewTestUser(t, f.store)

	release := make(chan struct{})
	started := make(chan struct{})
	f.store.InsertTodoFunc = func(ctx context.Context, todo model.Todo) (model.Todo, error) {
		close(started)
		<-release
		return f.store.Store.InsertTodo(ctx, todo)
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.todos.Create(ctx, model.CreateTodoInput{Title: "late"})
		done <- err
	}()
	<-started

	require.NoError(t, f.todos.Reset(ctx, other))
	close(release)
	require.NoError(t, <-done)

	state := f.todos.State()
	assert.Empty(t, state.Items)
	assert.False(t, state.Loading)
	assert.Equal(t, other.ID, f.todos.User().ID)
}

func TestSubscribeAndClose(t *testing.T) {
	f := newFixture(t, hooks.Options{})
	ch := f.todos.Subscribe()

	f.create(t, "ping")
	waitFor(t, func() bool {
		select {
		case _, ok := <-ch:
			return ok
		default:
			return false
		}
	})

	f.todos.Close()
	_, ok := <-ch
	for ok {
		_, ok = <-ch
	}
	assert.False(t, ok)

	_, err := f.todos.Create(context.Background(), model.CreateTodoInput{Title: "after"})
	assert.True(t, errors.Is(err, hooks.ErrClosed))
}

func TestChecklistCreateDefaultsCategory(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)
	checklist := hooks.NewChecklist(s, hooks.Options{})
	defer checklist.Close()
	require.NoError(t, checklist.Reset(ctx, user))

	item, err := checklist.Create(ctx, model.CreateChecklistItemInput{Title: "Bread"})
	require.NoError(t, err)
	assert.Equal(t, "general", item.Category)
	assert.False(t, item.Completed)

	toggled, err := checklist.ToggleComplete(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	require.NoError(t, checklist.Fetch(ctx))
	items := checklist.State().Items
	require.Len(t, items, 1)
	assert.Equal(t, "general", items[0].Category)
	assert.True(t, items[0].Completed)
}
