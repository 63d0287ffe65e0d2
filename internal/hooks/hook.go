// Package hooks keeps an in-memory, owner-scoped copy of each record kind
// and funnels every change through the record store.
//
// Local state changes only after the store confirms a call. Mutations on
// the same id run one at a time.
package hooks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nhle/checkit/internal/model"
)

// DefaultTimeout bounds a single store call when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// State is a read-only snapshot of a hook.
type State[T any] struct {
	// Items are ordered by creation time, oldest first.
	Items   []T
	Loading bool
	Error   string
}

// Resource is the store surface one hook talks to.
type Resource[T model.Entity, C any, P any] interface {
	List(ctx context.Context, ownerID string) ([]T, error)
	Insert(ctx context.Context, ownerID string, input C) (T, error)
	Update(ctx context.Context, ownerID, id string, patch P) (T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Options tune a hook.
type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Hook owns the items of one record kind for the current user.
type Hook[T model.Entity, C any, P any] struct {
	res      Resource[T, C, P]
	singular string
	plural   string
	timeout  time.Duration
	logger   *slog.Logger
	ids      *keyedMutex

	mu         sync.RWMutex
	user       *model.User
	items      []T
	inflight   int
	errMsg     string
	generation uint64
	closed     bool
	subs       []chan struct{}
}

func newHook[T model.Entity, C any, P any](
	res Resource[T, C, P],
	singular, plural string,
	opts Options,
) *Hook[T, C, P] {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Hook[T, C, P]{
		res:      res,
		singular: singular,
		plural:   plural,
		timeout:  opts.Timeout,
		logger:   opts.Logger.With("hook", plural),
		ids:      newKeyedMutex(),
	}
}

// State returns a copy of the hook's state.
func (h *Hook[T, C, P]) State() State[T] {
	h.mu.RLock()
	defer h.mu.RUnlock()

	items := make([]T, len(h.items))
	copy(items, h.items)
	return State[T]{
		Items:   items,
		Loading: h.inflight > 0,
		Error:   h.errMsg,
	}
}

// User returns the owner the hook is scoped to, or nil.
func (h *Hook[T, C, P]) User() *model.User {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.user
}

// Subscribe returns a channel that receives a value after every state
// change. Notifications coalesce; the channel is closed by Close.
func (h *Hook[T, C, P]) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	h.subs = append(h.subs, ch)
	return ch
}

// Close detaches the hook. Calls still in flight complete without
// touching state.
func (h *Hook[T, C, P]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.generation++
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}

// Reset scopes the hook to user: items and error are discarded, results of
// calls issued for the previous user are dropped, and the new user's items
// are fetched. A nil user leaves the hook empty.
func (h *Hook[T, C, P]) Reset(ctx context.Context, user *model.User) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.generation++
	h.user = user
	h.items = nil
	h.inflight = 0
	h.errMsg = ""
	h.notifyLocked()
	h.mu.Unlock()

	if user == nil {
		return nil
	}
	return h.Fetch(ctx)
}

// Fetch replaces the items with the current user's rows. Without a user it
// does nothing. A failure is recorded in State.Error and the previous items
// are kept; the error is also returned for callers that log it.
func (h *Hook[T, C, P]) Fetch(ctx context.Context) error {
	user, gen, err := h.begin(true)
	if err != nil || user == nil {
		return err
	}

	items, err := callWithTimeout(ctx, h.timeout, func(ctx context.Context) ([]T, error) {
		return h.res.List(ctx, user.ID)
	})
	if err != nil {
		return h.fail(gen, "fetch", h.plural, err)
	}

	h.finish(gen, func() {
		h.items = items
	})
	h.logger.Debug("fetched", "count", len(items))
	return nil
}

// Refetch is Fetch.
func (h *Hook[T, C, P]) Refetch(ctx context.Context) error {
	return h.Fetch(ctx)
}

// Create stores a new record for the current user and appends the stored
// row to the items.
func (h *Hook[T, C, P]) Create(ctx context.Context, input C) (T, error) {
	var zero T
	user, gen, err := h.begin(false)
	if err != nil {
		return zero, err
	}

	item, err := callWithTimeout(ctx, h.timeout, func(ctx context.Context) (T, error) {
		return h.res.Insert(ctx, user.ID, input)
	})
	if err != nil {
		return zero, h.fail(gen, "create", h.singular, err)
	}

	h.finish(gen, func() {
		h.items = append(h.items, item)
	})
	return item, nil
}

// Update applies patch to the record with id and replaces it in place.
func (h *Hook[T, C, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	if err := h.checkUser(); err != nil {
		var zero T
		return zero, err
	}
	unlock := h.ids.Lock(id)
	defer unlock()
	return h.update(ctx, id, patch)
}

// Delete removes the record with id once the store confirms it. On
// failure the items are left as they were.
func (h *Hook[T, C, P]) Delete(ctx context.Context, id string) error {
	if err := h.checkUser(); err != nil {
		return err
	}
	unlock := h.ids.Lock(id)
	defer unlock()

	user, gen, err := h.begin(false)
	if err != nil {
		return err
	}

	_, err = callWithTimeout(ctx, h.timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.res.Delete(ctx, user.ID, id)
	})
	if err != nil {
		return h.fail(gen, "delete", h.singular, err)
	}

	h.finish(gen, func() {
		for i, it := range h.items {
			if it.GetID() == id {
				h.items = append(h.items[:i:i], h.items[i+1:]...)
				break
			}
		}
	})
	return nil
}

// toggle flips a completion flag. The current value is read after the id
// lock is held so back-to-back toggles always see each other's result.
func (h *Hook[T, C, P]) toggle(ctx context.Context, id string, flip func(current T) P) (T, error) {
	var zero T
	if err := h.checkUser(); err != nil {
		return zero, err
	}
	unlock := h.ids.Lock(id)
	defer unlock()

	current, ok := h.find(id)
	if !ok {
		return zero, ErrItemNotFound
	}
	return h.update(ctx, id, flip(current))
}

func (h *Hook[T, C, P]) update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	user, gen, err := h.begin(false)
	if err != nil {
		return zero, err
	}

	item, err := callWithTimeout(ctx, h.timeout, func(ctx context.Context) (T, error) {
		return h.res.Update(ctx, user.ID, id, patch)
	})
	if err != nil {
		return zero, h.fail(gen, "update", h.singular, err)
	}

	h.finish(gen, func() {
		for i, it := range h.items {
			if it.GetID() == id {
				h.items[i] = item
				return
			}
		}
	})
	return item, nil
}

func (h *Hook[T, C, P]) find(id string) (T, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, it := range h.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (h *Hook[T, C, P]) checkUser() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	if h.user == nil {
		return model.ErrAuthenticationRequired
	}
	return nil
}

// begin marks an operation in flight and clears the last error. It returns
// the owner and generation the operation belongs to.
func (h *Hook[T, C, P]) begin(quiet bool) (*model.User, uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, 0, ErrClosed
	}
	if h.user == nil {
		if quiet {
			return nil, 0, nil
		}
		return nil, 0, model.ErrAuthenticationRequired
	}
	h.inflight++
	h.errMsg = ""
	h.notifyLocked()
	return h.user, h.generation, nil
}

// finish applies a successful result unless the hook was reset or closed
// since the operation began.
func (h *Hook[T, C, P]) finish(gen uint64, apply func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.generation {
		return
	}
	apply()
	h.inflight--
	h.notifyLocked()
}

func (h *Hook[T, C, P]) fail(gen uint64, op, entity string, err error) error {
	remote := &RemoteError{
		Op:      op,
		Entity:  entity,
		Err:     err,
		Timeout: errors.Is(err, context.DeadlineExceeded),
	}

	h.mu.Lock()
	if gen == h.generation {
		h.errMsg = remote.Error()
		h.inflight--
		h.notifyLocked()
	}
	h.mu.Unlock()

	h.logger.Warn("store call failed", "op", op, "error", err)
	return remote
}

// notifyLocked wakes subscribers without blocking. h.mu must be held.
func (h *Hook[T, C, P]) notifyLocked() {
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// callWithTimeout runs fn under the hook's deadline. A driver error caused
// by the deadline is reported as context.DeadlineExceeded.
func callWithTimeout[R any](
	ctx context.Context,
	timeout time.Duration,
	fn func(ctx context.Context) (R, error),
) (R, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(ctx)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return result, &timeoutError{cause: err}
	}
	return result, err
}

type timeoutError struct{ cause error }

func (e *timeoutError) Error() string { return e.cause.Error() }
func (e *timeoutError) Unwrap() []error {
	return []error{context.DeadlineExceeded, e.cause}
}
