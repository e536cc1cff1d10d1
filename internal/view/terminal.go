package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/D-ASA-D/TaskManager/internal/model"
)

const displayTimeLayout = "Mon, 02 Jan 2006 15:04"

// Terminal renders messages, event lists and notification toasts as plain
// lines on a writer.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	board  *MessageBoard
	toasts *ToastRegistry
}

func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out}
	t.board = NewMessageBoard(0, func(target, text string, kind Kind) {
		if text != "" {
			t.printf("[%s] %s\n", kind, text)
		}
	})
	t.toasts = NewToastRegistry(0, func(toast Toast) {
		t.printf("%s %s — %s (%s)\n",
			toast.Icon(), toast.Title, toast.Message,
			toast.EventTime.Format(displayTimeLayout))
	}, nil)
	return t
}

func (t *Terminal) ShowMessage(target, text string, kind Kind) {
	t.board.Set(target, text, kind)
}

func (t *Terminal) ShowNotification(toast Toast) string {
	return t.toasts.Add(toast)
}

func (t *Terminal) RenderEvents(events []model.Event) {
	if len(events) == 0 {
		t.printf("No events yet\n")
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, ev := range events {
		fmt.Fprintf(t.out, "#%d  %s  📅 %s\n", ev.ID, ev.Title, ev.EventTime.Format(displayTimeLayout))
		if ev.Description != "" {
			fmt.Fprintf(t.out, "     %s\n", ev.Description)
		}
	}
}

func (t *Terminal) RenderEventsError(err error) {
	t.printf("Failed to load events: %v\n", err)
}

func (t *Terminal) ClearNotifications() {
	t.toasts.Clear()
}

// Toasts exposes the live toast registry for dismissal.
func (t *Terminal) Toasts() *ToastRegistry {
	return t.toasts
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}
