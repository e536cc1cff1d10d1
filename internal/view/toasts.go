package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastTTL is how long a notification stays on screen unless dismissed.
const ToastTTL = 10 * time.Second

// ToastRegistry tracks live on-screen notifications. Each toast auto-removes
// after the TTL; an early dismiss goes through the same removal path.
type ToastRegistry struct {
	mu       sync.Mutex
	ttl      time.Duration
	active   map[string]Toast
	order    []string
	timers   map[string]*time.Timer
	onShow   func(Toast)
	onRemove func(Toast)
}

// NewToastRegistry creates a registry with the given TTL; zero means ToastTTL.
func NewToastRegistry(ttl time.Duration, onShow, onRemove func(Toast)) *ToastRegistry {
	if ttl <= 0 {
		ttl = ToastTTL
	}
	return &ToastRegistry{
		ttl:      ttl,
		active:   make(map[string]Toast),
		timers:   make(map[string]*time.Timer),
		onShow:   onShow,
		onRemove: onRemove,
	}
}

// Add assigns the toast an id, surfaces it, and schedules its removal.
func (r *ToastRegistry) Add(t Toast) string {
	t.ID = uuid.New().String()

	r.mu.Lock()
	r.active[t.ID] = t
	r.order = append(r.order, t.ID)
	r.timers[t.ID] = time.AfterFunc(r.ttl, func() {
		r.Dismiss(t.ID)
	})
	r.mu.Unlock()

	if r.onShow != nil {
		r.onShow(t)
	}
	return t.ID
}

// Dismiss removes a toast, whether from the user or the expiry timer.
// Returns false if the toast was already gone.
func (r *ToastRegistry) Dismiss(id string) bool {
	r.mu.Lock()
	t, ok := r.active[id]
	if ok {
		delete(r.active, id)
		if timer := r.timers[id]; timer != nil {
			timer.Stop()
		}
		delete(r.timers, id)
		for i, oid := range r.order {
			if oid == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if ok && r.onRemove != nil {
		r.onRemove(t)
	}
	return ok
}

// Clear drops every live toast without firing removal callbacks, matching
// the logout path that empties the notification container wholesale.
func (r *ToastRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, timer := range r.timers {
		timer.Stop()
		delete(r.timers, id)
	}
	r.active = make(map[string]Toast)
	r.order = nil
}

// Active returns live toasts in display order.
func (r *ToastRegistry) Active() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.active[id])
	}
	return out
}
