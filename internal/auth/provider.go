// Package auth signs users in and out and tells subscribers who the
// current user is.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/checkit/internal/model"
	"github.com/nhle/checkit/internal/store"
	"github.com/nhle/checkit/internal/validate"
)

var (
	// ErrInvalidCredentials is returned when the email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailInUse is returned by SignUp when the email is already registered.
	ErrEmailInUse = errors.New("email already registered")

	// ErrSessionNotFound is returned for unknown, expired or revoked tokens.
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultSessionTTL is used when NewProvider is given a zero TTL.
const DefaultSessionTTL = 30 * 24 * time.Hour

// UserStore is the subset of store.Store the provider needs.
type UserStore interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Provider owns the signed-in identity. Subscribers are called, outside
// the provider's lock, every time the identity changes.
type Provider struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
	logger   *slog.Logger

	mu          sync.RWMutex
	user        *model.User
	token       string
	subscribers map[int]func(*model.User)
	nextSubID   int
}

// NewProvider creates a signed-out provider. If logger is nil, slog.Default() is used.
func NewProvider(users UserStore, sessions SessionStore, ttl time.Duration, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Provider{
		users:       users,
		sessions:    sessions,
		ttl:         ttl,
		logger:      logger,
		subscribers: make(map[int]func(*model.User)),
	}
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (p *Provider) CurrentUser() *model.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// SessionToken returns the active session token, or "".
func (p *Provider) SessionToken() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token
}

// SignUp registers a new user and signs them in.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	email, err := validate.Credentials(email, password)
	if err != nil {
		return nil, err
	}

	if _, err := p.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := p.users.CreateUser(ctx, model.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("signing up: %w", err)
	}

	p.logger.Info("user signed up", "user_id", user.ID)
	if err := p.startSession(ctx, &user); err != nil {
		return nil, err
	}
	return p.CurrentUser(), nil
}

// SignIn checks the password and starts a session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email, err := validate.Credentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("signing in: %w", err)
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	p.logger.Info("user signed in", "user_id", user.ID)
	if err := p.startSession(ctx, user); err != nil {
		return nil, err
	}
	return p.CurrentUser(), nil
}

// Restore resumes a previously issued session.
func (p *Provider) Restore(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := p.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			_ = p.sessions.Delete(ctx, token)
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("restoring session: %w", err)
	}

	p.logger.Info("session restored", "user_id", user.ID)
	p.setIdentity(user, token)
	return p.CurrentUser(), nil
}

// SignOut ends the current session. Signing out while signed out is a no-op.
func (p *Provider) SignOut(ctx context.Context) error {
	p.mu.RLock()
	token, signedIn := p.token, p.user != nil
	p.mu.RUnlock()
	if !signedIn {
		return nil
	}

	if token != "" {
		if err := p.sessions.Delete(ctx, token); err != nil && !errors.Is(err, ErrSessionNotFound) {
			p.logger.Warn("deleting session", "error", err)
		}
	}

	p.logger.Info("user signed out")
	p.setIdentity(nil, "")
	return nil
}

// Subscribe registers fn for identity changes and returns a function that
// removes it.
func (p *Provider) Subscribe(fn func(*model.User)) func() {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, id)
			p.mu.Unlock()
		})
	}
}

func (p *Provider) startSession(ctx context.Context, user *model.User) error {
	created := time.Now().UTC()
	session := Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: created,
		ExpiresAt: created.Add(p.ttl),
	}
	if err := p.sessions.Save(ctx, session); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	p.setIdentity(user, session.Token)
	return nil
}

func (p *Provider) setIdentity(user *model.User, token string) {
	p.mu.Lock()
	if user != nil {
		u := *user
		p.user = &u
	} else {
		p.user = nil
	}
	p.token = token
	subs := make([]func(*model.User), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	current := p.CurrentUser()
	for _, fn := range subs {
		fn(current)
	}
}
