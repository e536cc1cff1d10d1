// Package event manages the current user's events: create, list, delete.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/model"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Manager holds no event state of its own; the backend owns the events and
// the list is re-fetched on demand.
type Manager struct {
	api     *api.Client
	session *session.Store
	view    view.Renderer
	confirm func(prompt string) bool
}

// NewManager wires the manager. confirm is asked before every delete; a nil
// confirm means deletes proceed unprompted.
func NewManager(client *api.Client, store *session.Store, renderer view.Renderer, confirm func(prompt string) bool) *Manager {
	return &Manager{api: client, session: store, view: renderer, confirm: confirm}
}

// Create submits a new event for the current user. The entered time is
// normalized to minute precision with explicit :00 seconds, matching what
// the backend expects from the form's datetime field. On success the list
// reloads.
func (m *Manager) Create(ctx context.Context, title, description string, at time.Time) (*model.Event, error) {
	user := m.session.Current()
	if user == nil {
		m.view.ShowMessage(view.TargetEvent, "Log in first", view.KindError)
		return nil, ErrNotLoggedIn
	}

	ev := model.Event{
		Title:       title,
		Description: description,
		EventTime:   model.NewLocalTime(at.Truncate(time.Minute)),
		UserID:      user.ID,
	}

	created, err := m.api.CreateEvent(ctx, ev)
	if err != nil {
		m.view.ShowMessage(view.TargetEvent, "Error: could not create event", view.KindError)
		return nil, fmt.Errorf("create event: %w", err)
	}

	slog.Info("event created", "event_id", created.ID, "title", created.Title)
	m.view.ShowMessage(view.TargetEvent, "Event created!", view.KindSuccess)
	m.Load(ctx)
	return created, nil
}

// Load fetches the user's events and renders them in the order the backend
// returned, an explicit empty state included. On failure an error state is
// rendered instead of stale content.
func (m *Manager) Load(ctx context.Context) ([]model.Event, error) {
	user := m.session.Current()
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	events, err := m.api.EventsByUser(ctx, user.ID)
	if err != nil {
		m.view.RenderEventsError(err)
		return nil, fmt.Errorf("load events: %w", err)
	}

	m.view.RenderEvents(events)
	return events, nil
}

// Upcoming fetches only events that have not started yet.
func (m *Manager) Upcoming(ctx context.Context) ([]model.Event, error) {
	user := m.session.Current()
	if user == nil {
		return nil, ErrNotLoggedIn
	}

	events, err := m.api.UpcomingEvents(ctx, user.ID)
	if err != nil {
		m.view.RenderEventsError(err)
		return nil, fmt.Errorf("load upcoming events: %w", err)
	}

	m.view.RenderEvents(events)
	return events, nil
}

// Get fetches a single event by id.
func (m *Manager) Get(ctx context.Context, id int64) (*model.Event, error) {
	return m.api.EventByID(ctx, id)
}

// Delete asks for confirmation, removes the event and reloads the list.
// A missing event gets its own message, distinct from the generic failure.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if m.session.Current() == nil {
		m.view.ShowMessage(view.TargetEvent, "Log in first", view.KindError)
		return ErrNotLoggedIn
	}

	if m.confirm != nil && !m.confirm(fmt.Sprintf("Delete event #%d?", id)) {
		return nil
	}

	if err := m.api.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			m.view.ShowMessage(view.TargetEvent, "Error: event not found", view.KindError)
			return fmt.Errorf("delete event %d: %w", id, err)
		}
		m.view.ShowMessage(view.TargetEvent, "Error: could not delete event", view.KindError)
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	slog.Info("event deleted", "event_id", id)
	m.view.ShowMessage(view.TargetEvent, "Event deleted!", view.KindSuccess)
	m.Load(ctx)
	return nil
}
