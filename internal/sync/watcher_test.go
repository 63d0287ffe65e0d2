package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch          chan struct{}
	RefetchFunc func(ctx context.Context) error
}

func newFakeSource() *fakeSource {
	return &fakeSource{ch: make(chan struct{}, 1)}
}

func (f *fakeSource) Subscribe() <-chan struct{} { return f.ch }

func (f *fakeSource) Refetch(ctx context.Context) error {
	if f.RefetchFunc != nil {
		return f.RefetchFunc(ctx)
	}
	return nil
}

func runWithTimeout(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
		return nil
	}
}

func TestWatcherForwardsChanges(t *testing.T) {
	todos := newFakeSource()
	w := New(nil)
	w.Register("todos", todos)

	cmd := w.Start()
	require.NotNil(t, cmd)
	defer w.Stop()

	todos.ch <- struct{}{}
	assert.Equal(t, ChangedMsg{Source: "todos"}, runWithTimeout(t, cmd))

	assert.Nil(t, w.Start(), "second start is a no-op")
}

func TestWatcherStopReleasesWaiters(t *testing.T) {
	w := New(nil)
	w.Register("todos", newFakeSource())
	cmd := w.Start()

	w.Stop()
	assert.Nil(t, runWithTimeout(t, cmd))
	w.Stop()
}

func TestRefreshAllReportsEachSource(t *testing.T) {
	ok := newFakeSource()
	failing := newFakeSource()
	failing.RefetchFunc = func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("boom")
	}

	w := New(nil)
	w.Register("todos", ok)
	w.Register("categories", failing)

	batch, isBatch := w.RefreshAll()().(tea.BatchMsg)
	require.True(t, isBatch)
	require.Len(t, batch, 2)

	results := map[string]error{}
	for _, cmd := range batch {
		msg := cmd().(RefreshResultMsg)
		results[msg.Source] = msg.Error
	}
	assert.NoError(t, results["todos"])
	assert.EqualError(t, results["categories"], "boom")
}
