// Package sync bridges hook change notifications into the Bubble Tea
// runtime and re-fetches every hook on demand.
package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ChangedMsg is a tea.Msg sent when a watched hook publishes a new state.
type ChangedMsg struct {
	Source string
}

// RefreshResultMsg is a tea.Msg sent when a refresh of one source finishes.
type RefreshResultMsg struct {
	Source string
	Error  error
}

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// Source is a hook that can be watched and re-fetched.
type Source interface {
	Subscribe() <-chan struct{}
	Refetch(ctx context.Context) error
}

type sourceEntry struct {
	name string
	src  Source
}

// Watcher fans hook change notifications into a single channel that the
// TUI drains one message at a time.
type Watcher struct {
	sources  []sourceEntry
	changeCh chan ChangedMsg
	stopCh   chan struct{}
	logger   *slog.Logger
	mu       gosync.Mutex
	running  bool
}

// New creates an idle watcher.
func New(logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		changeCh: make(chan ChangedMsg, 16),
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Register adds a named source. Sources must be registered before Start.
func (w *Watcher) Register(name string, src Source) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sources = append(w.sources, sourceEntry{name: name, src: src})
}

// Start begins forwarding notifications and returns a tea.Cmd that waits
// for the first one.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	sources := make([]sourceEntry, len(w.sources))
	copy(sources, w.sources)
	w.mu.Unlock()

	for _, entry := range sources {
		go w.forward(entry.name, entry.src.Subscribe())
	}
	return w.WaitForNext()
}

// Stop halts forwarding. Pending WaitForNext commands return nil.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

// WaitForNext returns a tea.Cmd that waits for the next change. Call it
// again after handling a ChangedMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.changeCh:
			return msg
		case <-w.stopCh:
			return nil
		}
	}
}

// RefreshAll returns one tea.Cmd per source, each re-fetching it with a
// bounded timeout.
func (w *Watcher) RefreshAll() tea.Cmd {
	w.mu.Lock()
	sources := make([]sourceEntry, len(w.sources))
	copy(sources, w.sources)
	w.mu.Unlock()

	cmds := make([]tea.Cmd, 0, len(sources))
	for _, entry := range sources {
		cmds = append(cmds, w.refresh(entry))
	}
	return tea.Batch(cmds...)
}

func (w *Watcher) refresh(entry sourceEntry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := entry.src.Refetch(ctx)
		if err != nil {
			w.logger.Warn("refresh failed", "source", entry.name, "error", err)
		}
		return RefreshResultMsg{Source: entry.name, Error: err}
	}
}

// forward relays notifications from one source until it closes or the
// watcher stops.
func (w *Watcher) forward(name string, ch <-chan struct{}) {
	for {
		select {
		case <-w.stopCh:
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			select {
			case w.changeCh <- ChangedMsg{Source: name}:
			default:
				// A pending change for the UI already covers this one.
			}
		}
	}
}
