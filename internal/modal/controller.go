// Package modal replaces the per-screen "which popup is open" booleans with
// one tagged state per modal scope, so two confirmation dialogs can never be
// visible at once by construction.
package modal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/internal/domain"
)

// State is the overlay currently shown in this scope.
type State int

const (
	Idle State = iota
	Editing
	ConfirmDelete
	ConfirmLogout
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case ConfirmDelete:
		return "confirm-delete"
	case ConfirmLogout:
		return "confirm-logout"
	}
	return "idle"
}

// ErrNoPending is returned when a confirmation arrives for a dialog that is
// no longer open.
var ErrNoPending = errors.New("no pending confirmation in this state")

// Hooks connect a controller scope to its catalog store and session.
type Hooks[T domain.Entity] struct {
	Delete func(ctx context.Context, id string) error
	Update func(ctx context.Context, id string, fields map[string]interface{}) (T, error)
	Reload func(ctx context.Context) error
	Logout func() error
}

// Controller is the finite-state overlay controller for one table or view.
// Screens with several tables run one controller per table.
type Controller[T domain.Entity] struct {
	mu     sync.Mutex
	state  State
	target T
	hooks  Hooks[T]
}

func NewController[T domain.Entity](hooks Hooks[T]) *Controller[T] {
	return &Controller[T]{hooks: hooks}
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Target returns the entity the open overlay refers to, false when Idle or
// confirming a logout.
func (c *Controller[T]) Target() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target, c.state == Editing || c.state == ConfirmDelete
}

// OpenEdit shows the edit form for e, replacing any prior overlay without
// running its pending action.
func (c *Controller[T]) OpenEdit(e T) {
	c.setState(Editing, e)
}

// OpenDelete shows the delete confirmation for e, replacing any prior
// overlay without running its pending action.
func (c *Controller[T]) OpenDelete(e T) {
	c.setState(ConfirmDelete, e)
}

// OpenLogout shows the logout confirmation.
func (c *Controller[T]) OpenLogout() {
	var zero T
	c.setState(ConfirmLogout, zero)
}

// Cancel dismisses whatever is open.
func (c *Controller[T]) Cancel() {
	var zero T
	c.setState(Idle, zero)
}

func (c *Controller[T]) setState(s State, target T) {
	c.mu.Lock()
	if c.state != Idle && c.state != s {
		zap.L().Debug("modal replaced", zap.Stringer("from", c.state), zap.Stringer("to", s))
	}
	c.state = s
	c.target = target
	c.mu.Unlock()
}

// ConfirmDelete runs the pending delete. On success the overlay closes and
// the collection reloads; on failure the confirmation stays open so the user
// can retry or cancel.
func (c *Controller[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.state != ConfirmDelete {
		c.mu.Unlock()
		return ErrNoPending
	}
	target := c.target
	c.mu.Unlock()

	if err := c.hooks.Delete(ctx, target.EntityID()); err != nil {
		return err
	}
	c.closeIf(ConfirmDelete, target.EntityID())
	return c.reload(ctx)
}

// ConfirmEdit submits the edit form. Failure keeps the form open with the
// error surfaced inline.
func (c *Controller[T]) ConfirmEdit(ctx context.Context, fields map[string]interface{}) (T, error) {
	c.mu.Lock()
	if c.state != Editing {
		c.mu.Unlock()
		var zero T
		return zero, ErrNoPending
	}
	target := c.target
	c.mu.Unlock()

	updated, err := c.hooks.Update(ctx, target.EntityID(), fields)
	if err != nil {
		var zero T
		return zero, err
	}
	c.closeIf(Editing, target.EntityID())
	return updated, c.reload(ctx)
}

// ConfirmLogout runs the logout hook and closes the dialog.
func (c *Controller[T]) ConfirmLogout() error {
	c.mu.Lock()
	if c.state != ConfirmLogout {
		c.mu.Unlock()
		return ErrNoPending
	}
	c.mu.Unlock()

	if c.hooks.Logout != nil {
		if err := c.hooks.Logout(); err != nil {
			return err
		}
	}
	c.mu.Lock()
	if c.state == ConfirmLogout {
		c.state = Idle
		var zero T
		c.target = zero
	}
	c.mu.Unlock()
	return nil
}

// closeIf returns to Idle only when the overlay is still the one whose
// action just completed; a dialog opened meanwhile stays up.
func (c *Controller[T]) closeIf(s State, id string) {
	c.mu.Lock()
	if c.state == s && c.target.EntityID() == id {
		c.state = Idle
		var zero T
		c.target = zero
	}
	c.mu.Unlock()
}

func (c *Controller[T]) reload(ctx context.Context) error {
	if c.hooks.Reload == nil {
		return nil
	}
	return c.hooks.Reload(ctx)
}
