// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

package authform

import (
	"context"
	"log/slog"
	"sync"

	"chatty/cli/internal/backend/model"
	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/logging"
	"chatty/cli/internal/session"
)

// Gateway is the identity service as seen by the form.
type Gateway interface {
	Login(ctx context.Context, creds model.Credentials) (session.Session, error)
	Signup(ctx context.Context, creds model.Credentials) (session.Session, error)
}

// Notice is the one-shot message shown when a submission fails.
type Notice struct {
	Title   string
	Message string
}

// Hooks are the controller's outputs. Both are optional and are called
// without any controller lock held.
type Hooks struct {
	// Established fires once for each distinct session that appears in the
	// store while the controller is open, including one already present at
	// construction. It runs inside the store's broadcast and must not call
	// Store.Set or Store.Clear.
	Established func(session.Session)
	// Failed fires once per failed submission. The form stays Failed until
	// Dismiss is called.
	Failed func(Notice)
}

// Controller runs one authentication attempt at a time against a Gateway
// and publishes the outcome to a session Store.
type Controller struct {
	store   *session.Store
	gateway Gateway
	hooks   Hooks
	log     *slog.Logger

	mu        sync.Mutex
	form      Form
	closed    bool
	announced session.Session

	unsubscribe func()
	pending     sync.WaitGroup
}

// New returns a controller in the SignIn intent with an empty form. If the
// store already holds a session, Established fires before New returns.
func New(store *session.Store, gateway Gateway, hooks Hooks, log *slog.Logger) *Controller {
	c := &Controller{
		store:   store,
		gateway: gateway,
		hooks:   hooks,
		log:     logging.OrDiscard(log),
	}
	c.unsubscribe = store.Subscribe(c.observe)
	c.observe(store.Get())
	return c
}

// observe re-checks the session on every store change.
func (c *Controller) observe(s session.Session) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if !s.Present() {
		c.announced = session.Session{}
		c.mu.Unlock()
		return
	}
	if s == c.announced {
		c.mu.Unlock()
		return
	}
	c.announced = s
	c.mu.Unlock()

	c.log.Debug("session established", "identity", s.Identity)
	if c.hooks.Established != nil {
		c.hooks.Established(s)
	}
}

// Form returns a snapshot of the current form.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Controller) apply(a Action) Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.form
	}
	c.form = Reduce(c.form, a)
	return c.form
}

// SetIntent switches between sign-in and sign-up. Typed values are kept.
func (c *Controller) SetIntent(i Intent) {
	c.apply(SetIntent{Intent: i})
}

// ToggleIntent switches to the other intent and returns it.
func (c *Controller) ToggleIntent() Intent {
	c.mu.Lock()
	next := c.form.Intent.Toggle()
	c.mu.Unlock()
	return c.apply(SetIntent{Intent: next}).Intent
}

// UpdateField records a typed value.
func (c *Controller) UpdateField(f Field, value string) {
	c.apply(UpdateField{Field: f, Value: value})
}

// CanSubmit reports whether Submit would start a new attempt.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return !c.closed && c.form.Phase != InFlight && !c.store.Get().Present()
}

// Submit sends the current credentials with the current intent and returns
// true, or returns false without doing anything when a submission is already
// in flight, a session already exists, or the controller is closed.
//
// The gateway call runs on its own goroutine. On success the session is
// written to the store, which in turn fires Established. On failure the
// store is left alone and Failed fires with the service's reason.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return false
	}
	c.form = Reduce(c.form, Submit{})
	intent, creds := c.form.Intent, c.form.Credentials
	c.pending.Add(1)
	c.mu.Unlock()

	c.log.Debug("submitting credentials", "intent", intent.String())
	go c.run(ctx, intent, creds)
	return true
}

func (c *Controller) run(ctx context.Context, intent Intent, creds model.Credentials) {
	defer c.pending.Done()

	call := c.gateway.Login
	if intent == SignUp {
		call = c.gateway.Signup
	}
	s, err := call(ctx, creds)
	if err == nil && !s.Present() {
		err = apperrors.New(apperrors.AuthenticationFailed, "The server returned an incomplete session")
	}
	if err != nil {
		c.fail(intent, err)
		return
	}
	c.succeed(s)
}

func (c *Controller) succeed(s session.Session) {
	c.mu.Lock()
	if !c.closed {
		c.form = Reduce(c.form, SubmitSucceeded{})
	}
	c.mu.Unlock()

	// The store outlives the form, so a late success is still published.
	if err := c.store.Set(s); err != nil {
		c.log.Error("discarding invalid session", "error", err)
	}
}

func (c *Controller) fail(intent Intent, err error) {
	reason := apperrors.Reason(apperrors.AsAuthFailure(err))
	c.log.Warn("authentication failed", "intent", intent.String(), "reason", logging.Mask(reason))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.form = Reduce(c.form, SubmitFailed{Reason: reason})
	c.mu.Unlock()

	if c.hooks.Failed != nil {
		c.hooks.Failed(Notice{Title: noticeTitle(intent), Message: reason})
	}
}

// Dismiss acknowledges a failure notice and returns the form to Idle with
// its values intact.
func (c *Controller) Dismiss() {
	c.apply(DismissNotice{})
}

// Wait blocks until the outstanding submission, if any, has completed.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Close detaches the controller. A submission still in flight completes
// without touching the form or firing hooks.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.unsubscribe()
}

func noticeTitle(i Intent) string {
	if i == SignUp {
		return "Sign up error"
	}
	return "Sign in error"
}
