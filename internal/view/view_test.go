package view

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/model"
)

func TestToastIcons(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		typ  model.NotificationType
		want string
	}{
		{"info", KindInfo, model.TypeFiveMinutesBefore, "🔔"},
		{"urgent started", KindUrgent, model.TypeEventStarted, "⏰"},
		{"urgent expired", KindUrgent, model.TypeEventExpired, "⚠️"},
		{"success", KindSuccess, "", "✅"},
		{"default", Kind(""), "", "📋"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast := Toast{Kind: tt.kind, Type: tt.typ}
			if got := toast.Icon(); got != tt.want {
				t.Errorf("Icon() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMessageBoardAutoClears(t *testing.T) {
	board := NewMessageBoard(30*time.Millisecond, nil)
	board.Set(TargetAuth, "Logged in successfully!", KindSuccess)

	if text, kind, ok := board.Get(TargetAuth); !ok || text == "" || kind != KindSuccess {
		t.Fatalf("Get() = %q, %s, %t; want the message visible", text, kind, ok)
	}

	time.Sleep(100 * time.Millisecond)
	if _, _, ok := board.Get(TargetAuth); ok {
		t.Error("message should have cleared after the TTL")
	}
}

func TestMessageBoardLastScheduledClearWins(t *testing.T) {
	board := NewMessageBoard(40*time.Millisecond, nil)

	board.Set(TargetEvent, "first", KindInfo)
	time.Sleep(25 * time.Millisecond)
	board.Set(TargetEvent, "second", KindInfo)

	// The first message's clear is not cancelable and wipes the second
	// early; this race is part of the contract.
	time.Sleep(30 * time.Millisecond)
	if text, _, ok := board.Get(TargetEvent); ok {
		t.Errorf("got %q still visible, want it cleared by the first timer", text)
	}
}

func TestToastAutoRemoval(t *testing.T) {
	var mu sync.Mutex
	var removed []Toast
	registry := NewToastRegistry(30*time.Millisecond, nil, func(toast Toast) {
		mu.Lock()
		defer mu.Unlock()
		removed = append(removed, toast)
	})

	id := registry.Add(Toast{Kind: KindInfo, Title: "Event coming up"})
	if id == "" {
		t.Fatal("Add() returned an empty id")
	}
	if got := len(registry.Active()); got != 1 {
		t.Fatalf("Active() = %d, want 1", got)
	}

	time.Sleep(100 * time.Millisecond)
	if got := len(registry.Active()); got != 0 {
		t.Fatalf("Active() = %d after TTL, want 0", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(removed) != 1 {
		t.Errorf("removal callback fired %d times, want 1", len(removed))
	}
}

func TestToastEarlyDismiss(t *testing.T) {
	var mu sync.Mutex
	var removals int
	registry := NewToastRegistry(30*time.Millisecond, nil, func(Toast) {
		mu.Lock()
		defer mu.Unlock()
		removals++
	})

	id := registry.Add(Toast{Kind: KindUrgent, Title: "Event started!"})
	if !registry.Dismiss(id) {
		t.Fatal("Dismiss() of a live toast returned false")
	}
	if registry.Dismiss(id) {
		t.Error("second Dismiss() should report the toast already gone")
	}

	// The expiry timer must not fire a second removal.
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if removals != 1 {
		t.Errorf("removal callbacks = %d, want 1", removals)
	}
}

func TestToastClearOnLogout(t *testing.T) {
	var mu sync.Mutex
	var removals int
	registry := NewToastRegistry(time.Minute, nil, func(Toast) {
		mu.Lock()
		defer mu.Unlock()
		removals++
	})

	registry.Add(Toast{Title: "a"})
	registry.Add(Toast{Title: "b"})
	registry.Clear()

	if got := len(registry.Active()); got != 0 {
		t.Fatalf("Active() = %d after Clear, want 0", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if removals != 0 {
		t.Errorf("Clear fired %d removal callbacks, want 0 (wholesale wipe)", removals)
	}
}

func TestTerminalRenderEvents(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.RenderEvents(nil)
	if !strings.Contains(buf.String(), "No events yet") {
		t.Errorf("empty state missing, output: %q", buf.String())
	}

	buf.Reset()
	term.RenderEvents([]model.Event{
		{ID: 2, Title: "standup", Description: "daily sync",
			EventTime: model.NewLocalTime(time.Date(2026, 3, 14, 15, 4, 0, 0, time.Local))},
	})
	out := buf.String()
	if !strings.Contains(out, "#2") || !strings.Contains(out, "standup") || !strings.Contains(out, "daily sync") {
		t.Errorf("event line incomplete: %q", out)
	}
}
