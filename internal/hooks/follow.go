package hooks

import (
	"context"

	"github.com/nhle/checkit/internal/model"
)

// Identity reports the signed-in user and announces changes to it.
type Identity interface {
	CurrentUser() *model.User
	Subscribe(fn func(*model.User)) (unsubscribe func())
}

// Resetter is implemented by every hook.
type Resetter interface {
	Reset(ctx context.Context, user *model.User) error
}

// Follow scopes hooks to the current identity now and after every change,
// so no hook ever serves one user's items to another. The returned
// function stops following.
func Follow(ctx context.Context, identity Identity, hooks ...Resetter) (stop func()) {
	reset := func(user *model.User) {
		for _, h := range hooks {
			// Failures are recorded in the hook's state.
			_ = h.Reset(ctx, user)
		}
	}

	stop = identity.Subscribe(reset)
	reset(identity.CurrentUser())
	return stop
}
