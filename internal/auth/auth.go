// Package auth implements the login and registration flows against the
// backend user endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/model"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("wrong password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrRegistrationFailed = errors.New("registration failed")
)

type Flow struct {
	api     *api.Client
	session *session.Store
	view    view.Renderer
}

func NewFlow(client *api.Client, store *session.Store, renderer view.Renderer) *Flow {
	return &Flow{api: client, session: store, view: renderer}
}

// Login fetches the user by name and compares the submitted password against
// the one the backend returns. The comparison is plain text equality; the
// backend stores and transmits passwords unhashed, a known gap in its
// contract that this client cannot fix. Failures surface as transient
// messages and typed errors, never panics.
func (f *Flow) Login(ctx context.Context, username, password string) (*model.User, error) {
	if v := validateCredentials(username, password); v.HasErrors() {
		f.view.ShowMessage(view.TargetAuth, "Error: "+v.FirstError(), view.KindError)
		return nil, fmt.Errorf("invalid input: %s", v.FirstError())
	}

	user, err := f.api.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			f.view.ShowMessage(view.TargetAuth, "Error: user not found", view.KindError)
			return nil, ErrUserNotFound
		}
		f.view.ShowMessage(view.TargetAuth, "Error: login failed", view.KindError)
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if user.Password != password {
		f.view.ShowMessage(view.TargetAuth, "Error: wrong password", view.KindError)
		return nil, ErrInvalidCredentials
	}

	if err := f.session.Save(user); err != nil {
		f.view.ShowMessage(view.TargetAuth, "Error: could not persist session", view.KindError)
		return nil, err
	}

	slog.Info("user logged in", "username", user.Username, "user_id", user.ID)
	f.view.ShowMessage(view.TargetAuth, "Logged in successfully!", view.KindSuccess)
	return user, nil
}

// Register creates a new account. The confirmation check happens locally
// before any network call; on success the caller returns to the login view
// with the username pre-filled.
func (f *Flow) Register(ctx context.Context, username, password, confirm string) (*model.User, error) {
	if password != confirm {
		f.view.ShowMessage(view.TargetRegister, "Passwords do not match", view.KindError)
		return nil, ErrPasswordMismatch
	}
	if v := validateCredentials(username, password); v.HasErrors() {
		f.view.ShowMessage(view.TargetRegister, "Error: "+v.FirstError(), view.KindError)
		return nil, fmt.Errorf("invalid input: %s", v.FirstError())
	}

	created, err := f.api.CreateUser(ctx, username, password)
	if err != nil {
		f.view.ShowMessage(view.TargetRegister, "Error: registration failed", view.KindError)
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	slog.Info("user registered", "username", created.Username, "user_id", created.ID)
	f.view.ShowMessage(view.TargetRegister, "Registration complete! You can log in now.", view.KindSuccess)
	return created, nil
}

// Logout clears the persisted session and empties the notification area.
// The caller stops the poller and resets its dedup state.
func (f *Flow) Logout() error {
	user := f.session.Current()
	if err := f.session.Clear(); err != nil {
		return err
	}
	f.view.ClearNotifications()
	if user != nil {
		slog.Info("user logged out", "username", user.Username)
	}
	return nil
}
