package event

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/model"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

type fakeRenderer struct {
	mu          sync.Mutex
	messages    []string
	kinds       []view.Kind
	rendered    [][]model.Event
	renderFails int
}

func (f *fakeRenderer) ShowMessage(target, text string, kind view.Kind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	f.kinds = append(f.kinds, kind)
}
func (f *fakeRenderer) ShowNotification(t view.Toast) string { return "" }
func (f *fakeRenderer) RenderEvents(events []model.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered = append(f.rendered, events)
}
func (f *fakeRenderer) RenderEventsError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderFails++
}
func (f *fakeRenderer) ClearNotifications() {}

func (f *fakeRenderer) lastMessage(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		t.Fatal("no message was rendered")
	}
	return f.messages[len(f.messages)-1]
}

func newTestManager(t *testing.T, mux *http.ServeMux, loggedIn bool, confirm func(string) bool) (*Manager, *fakeRenderer) {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if loggedIn {
		if err := store.Save(&model.User{ID: 3, Username: "alice"}); err != nil {
			t.Fatalf("Save(): %v", err)
		}
	}

	renderer := &fakeRenderer{}
	m := NewManager(api.NewClient(srv.URL, time.Second), store, renderer, confirm)
	return m, renderer
}

func emptyListHandler(mux *http.ServeMux) {
	mux.HandleFunc("/events/user/3", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Event{})
	})
}

func TestCreateRequiresSession(t *testing.T) {
	m, renderer := newTestManager(t, http.NewServeMux(), false, nil)

	_, err := m.Create(context.Background(), "standup", "", time.Now())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("got %v, want ErrNotLoggedIn", err)
	}
	if msg := renderer.lastMessage(t); !strings.Contains(msg, "Log in") {
		t.Errorf("got message %q", msg)
	}
}

func TestCreateNormalizesTimeAndReloads(t *testing.T) {
	mux := http.NewServeMux()
	var body map[string]any
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(model.Event{ID: 4, Title: "standup"})
	})
	emptyListHandler(mux)
	m, renderer := newTestManager(t, mux, true, nil)

	at := time.Date(2026, 3, 14, 15, 4, 37, 500, time.Local)
	created, err := m.Create(context.Background(), "standup", "daily sync", at)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	if created.ID != 4 {
		t.Errorf("created.ID = %d, want 4", created.ID)
	}
	// Seconds are zeroed, minute precision extended with :00.
	if got := body["eventTime"]; got != "2026-03-14T15:04:00" {
		t.Errorf("eventTime = %v, want 2026-03-14T15:04:00", got)
	}
	if body["userId"] != float64(3) {
		t.Errorf("userId = %v, want 3", body["userId"])
	}
	// Success reloads the list.
	if len(renderer.rendered) != 1 {
		t.Errorf("list rendered %d times after create, want 1", len(renderer.rendered))
	}
}

func TestCreateFailureMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad", http.StatusBadRequest)
	})
	m, renderer := newTestManager(t, mux, true, nil)

	if _, err := m.Create(context.Background(), "standup", "", time.Now()); err == nil {
		t.Fatal("expected an error")
	}
	if msg := renderer.lastMessage(t); !strings.Contains(msg, "create") {
		t.Errorf("got message %q, want a creation error", msg)
	}
}

func TestLoadEmptyState(t *testing.T) {
	mux := http.NewServeMux()
	emptyListHandler(mux)
	m, renderer := newTestManager(t, mux, true, nil)

	events, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
	// The empty state is still an explicit render, not a skipped one.
	if len(renderer.rendered) != 1 {
		t.Fatalf("rendered %d times, want 1", len(renderer.rendered))
	}
}

func TestLoadErrorState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events/user/3", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	m, renderer := newTestManager(t, mux, true, nil)

	if _, err := m.Load(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if renderer.renderFails != 1 {
		t.Errorf("error state rendered %d times, want 1", renderer.renderFails)
	}
	if len(renderer.rendered) != 0 {
		t.Error("stale content must not be rendered on failure")
	}
}

func TestDeleteDeclinedConfirmation(t *testing.T) {
	mux := http.NewServeMux()
	var deleted bool
	mux.HandleFunc("/events/9", func(w http.ResponseWriter, r *http.Request) {
		deleted = true
	})
	m, _ := newTestManager(t, mux, true, func(string) bool { return false })

	if err := m.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if deleted {
		t.Error("declined confirmation must not issue the request")
	}
}

func TestDeleteNotFoundMessage(t *testing.T) {
	m, renderer := newTestManager(t, http.NewServeMux(), true, func(string) bool { return true })

	err := m.Delete(context.Background(), 9)
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if msg := renderer.lastMessage(t); !strings.Contains(msg, "not found") {
		t.Errorf("got message %q, want the NotFound-specific one", msg)
	}
}

func TestDeleteGenericFailureMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events/9", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	m, renderer := newTestManager(t, mux, true, func(string) bool { return true })

	if err := m.Delete(context.Background(), 9); err == nil {
		t.Fatal("expected an error")
	}
	msg := renderer.lastMessage(t)
	if strings.Contains(msg, "not found") {
		t.Errorf("got NotFound message %q for a non-404 failure", msg)
	}
	if !strings.Contains(msg, "delete") {
		t.Errorf("got message %q, want a deletion error", msg)
	}
}

func TestDeleteSuccessReloads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events/9", func(w http.ResponseWriter, r *http.Request) {})
	emptyListHandler(mux)
	m, renderer := newTestManager(t, mux, true, func(string) bool { return true })

	if err := m.Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	if msg := renderer.lastMessage(t); !strings.Contains(msg, "deleted") {
		t.Errorf("got message %q, want the success one", msg)
	}
	if len(renderer.rendered) != 1 {
		t.Errorf("list rendered %d times after delete, want 1", len(renderer.rendered))
	}
}
