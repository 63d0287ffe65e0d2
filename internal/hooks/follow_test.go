package hooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/checkit/internal/auth"
	"github.com/nhle/checkit/internal/hooks"
	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/testutil"
	"github.com/nhle/checkit/internal/viewmodel"
)

func TestFollowResetsOnIdentityChange(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	provider := auth.NewProvider(s, auth.NewMemorySessionStore(), 0, nil)

	todos := hooks.NewTodos(s, hooks.Options{})
	checklist := hooks.NewChecklist(s, hooks.Options{})
	defer todos.Close()
	defer checklist.Close()

	stop := hooks.Follow(ctx, provider, todos, checklist)
	defer stop()
	assert.Nil(t, todos.User())

	_, err := provider.SignUp(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	_, err = todos.Create(ctx, model.CreateTodoInput{Title: "ann's todo"})
	require.NoError(t, err)
	_, err = checklist.Create(ctx, model.CreateChecklistItemInput{Title: "ann's eggs"})
	require.NoError(t, err)

	bob, err := provider.SignUp(ctx, "bob@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, todos.User().ID)
	assert.Empty(t, todos.State().Items)
	assert.Empty(t, checklist.State().Items)

	_, err = provider.SignIn(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	require.Len(t, todos.State().Items, 1)
	assert.Equal(t, "ann's todo", todos.State().Items[0].Title)
	require.Len(t, checklist.State().Items, 1)

	require.NoError(t, provider.SignOut(ctx))
	assert.Nil(t, todos.User())
	assert.Empty(t, todos.State().Items)
	assert.Empty(t, checklist.State().Items)
}

func TestDeletedCategoryLeavesTodosUncategorized(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)

	todos := hooks.NewTodos(s, hooks.Options{})
	categories := hooks.NewCategories(s, hooks.Options{})
	defer todos.Close()
	defer categories.Close()
	require.NoError(t, todos.Reset(ctx, user))
	require.NoError(t, categories.Reset(ctx, user))

	errands, err := categories.Create(ctx, model.CreateCategoryInput{Name: "Errands", Color: "#10B981"})
	require.NoError(t, err)
	for _, title := range []string{"Post office", "Pharmacy"} {
		_, err := todos.Create(ctx, model.CreateTodoInput{Title: title, CategoryID: &errands.ID})
		require.NoError(t, err)
	}

	require.NoError(t, categories.Delete(ctx, errands.ID))
	require.NoError(t, todos.Fetch(ctx))
	require.NoError(t, categories.Fetch(ctx))

	items := todos.State().Items
	require.Len(t, items, 2)
	for _, td := range items {
		require.NotNil(t, td.CategoryID)
		assert.Equal(t, errands.ID, *td.CategoryID)
	}

	groups := viewmodel.GroupTodosByCategory(items, categories.State().Items)
	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].Category)
	assert.Len(t, groups[0].Todos, 2)
}

func TestCategoryUpdateInPlace(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	user := testutil.NewTestUser(t, s)
	categories := hooks.NewCategories(s, hooks.Options{})
	defer categories.Close()
	require.NoError(t, categories.Reset(ctx, user))

	_, err := categories.Create(ctx, model.CreateCategoryInput{Name: "Work", Color: "#3B82F6"})
	require.NoError(t, err)
	home, err := categories.Create(ctx, model.CreateCategoryInput{Name: "Home", Color: "#EF4444"})
	require.NoError(t, err)

	_, err = categories.Update(ctx, home.ID, model.CategoryPatch{Color: testutil.StrPtr("#8B5CF6")})
	require.NoError(t, err)

	items := categories.State().Items
	require.Len(t, items, 2)
	assert.Equal(t, "Home", items[1].Name)
	assert.Equal(t, "#8B5CF6", items[1].Color)
}
