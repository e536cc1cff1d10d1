// Package view is the presentation layer. The auth, event and poller
// components emit data through the Renderer interface; the terminal
// implementation renders it, and tests substitute their own.
package view

import (
	"time"

	"github.com/D-ASA-D/TaskManager/internal/model"
)

// Kind styles a message or notification.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindUrgent  Kind = "urgent"
)

// Message targets, standing in for the page areas of the original UI.
const (
	TargetAuth     = "auth"
	TargetRegister = "register"
	TargetEvent    = "event"
)

// Toast is one on-screen notification.
type Toast struct {
	ID        string
	Kind      Kind
	Type      model.NotificationType
	Title     string
	Message   string
	EventTime time.Time
}

// Icon returns the display icon for the toast's kind and situation.
func (t Toast) Icon() string {
	switch t.Kind {
	case KindUrgent:
		if t.Type == model.TypeEventExpired {
			return "⚠️"
		}
		return "⏰"
	case KindSuccess:
		return "✅"
	case KindInfo:
		return "🔔"
	default:
		return "📋"
	}
}

// KindForType maps a server-supplied notification type to a display kind.
func KindForType(t model.NotificationType) Kind {
	switch t {
	case model.TypeEventStarted, model.TypeEventExpired:
		return KindUrgent
	case model.TypeFiveMinutesBefore:
		return KindInfo
	default:
		return KindInfo
	}
}

type Renderer interface {
	// ShowMessage replaces the target's content with a transient status
	// message that clears itself after a fixed delay.
	ShowMessage(target, text string, kind Kind)
	// ShowNotification surfaces a dismissible toast and returns its id.
	ShowNotification(t Toast) string
	// RenderEvents displays the list in backend order, with an explicit
	// empty state for zero events.
	RenderEvents(events []model.Event)
	// RenderEventsError displays an error state instead of stale content.
	RenderEventsError(err error)
	// ClearNotifications empties the notification area, used on logout.
	ClearNotifications()
}
