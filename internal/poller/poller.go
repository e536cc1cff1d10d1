// Package poller drives the periodic notification check while a session
// exists and deduplicates what has already been announced.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/D-ASA-D/TaskManager/internal/api"
	"github.com/D-ASA-D/TaskManager/internal/session"
	"github.com/D-ASA-D/TaskManager/internal/view"
)

// Mode selects where notifications are computed.
type Mode string

const (
	// ModeLocal fetches the user's events and classifies them client-side.
	ModeLocal Mode = "local"
	// ModeServer fetches pre-computed notifications from the backend and
	// renders them as supplied.
	ModeServer Mode = "server"
)

const DefaultInterval = 10 * time.Second

type Poller struct {
	api      *api.Client
	session  *session.Store
	view     view.Renderer
	mode     Mode
	interval time.Duration

	mu     sync.Mutex
	shown  map[string]struct{}
	cancel context.CancelFunc

	inFlight atomic.Bool
	now      func() time.Time
}

func New(client *api.Client, store *session.Store, renderer view.Renderer, mode Mode, interval time.Duration) *Poller {
	if mode == "" {
		mode = ModeLocal
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		api:      client,
		session:  store,
		view:     renderer,
		mode:     mode,
		interval: interval,
		shown:    make(map[string]struct{}),
		now:      time.Now,
	}
}

// Start begins the periodic check, polling once immediately so the first
// notification does not wait a full period. Calling Start on a running
// poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		cancel()
		return
	}
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		slog.Info("notification poller started", "mode", p.mode, "interval", p.interval)
		p.Poll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("notification poller stopped")
				return
			case <-ticker.C:
				p.Poll(ctx)
			}
		}
	}()
}

// Stop cancels the timer. Already-rendered notifications stay on screen;
// the logout path clears those separately.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Reset clears the dedup set. Called on logout so a later login can
// re-announce the same situations.
func (p *Poller) Reset() {
	p.mu.Lock()
	p.shown = make(map[string]struct{})
	p.mu.Unlock()
}

// Poll runs a single tick. A tick arriving while a previous poll is still
// in flight is skipped rather than overlapped. Failures are logged and
// otherwise swallowed; dedup state and the timer are untouched and the next
// tick retries independently.
func (p *Poller) Poll(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		slog.Debug("previous poll still in flight, skipping tick")
		return
	}
	defer p.inFlight.Store(false)

	user := p.session.Current()
	if user == nil {
		return
	}
	epoch := p.session.Epoch()

	switch p.mode {
	case ModeServer:
		p.pollServer(ctx, user.ID, epoch)
	default:
		p.pollLocal(ctx, user.ID, epoch)
	}
}

func (p *Poller) pollLocal(ctx context.Context, userID, epoch int64) {
	events, err := p.api.EventsByUser(ctx, userID)
	if err != nil {
		slog.Error("notification poll failed", "error", err)
		return
	}
	if p.session.Epoch() != epoch {
		slog.Debug("discarding poll response from a stale session")
		return
	}

	// Re-evaluated every tick, never cached.
	now := p.now()
	for _, ev := range events {
		for _, s := range classify(ev, now) {
			p.show(s.key, s.toast)
		}
	}
}

func (p *Poller) pollServer(ctx context.Context, userID, epoch int64) {
	notifications, err := p.api.NotificationsByUser(ctx, userID)
	if err != nil {
		slog.Error("notification poll failed", "error", err)
		return
	}
	if p.session.Epoch() != epoch {
		slog.Debug("discarding poll response from a stale session")
		return
	}

	for _, n := range notifications {
		key := fmt.Sprintf("%d-%s", n.EventID, n.Type)
		p.show(key, view.Toast{
			Kind:      view.KindForType(n.Type),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			EventTime: n.EventTime.Time,
		})
	}
}

// show renders the toast unless its key was already announced this session,
// and records the key so repeated polls stay quiet about it.
func (p *Poller) show(key string, t view.Toast) {
	p.mu.Lock()
	if _, done := p.shown[key]; done {
		p.mu.Unlock()
		return
	}
	p.shown[key] = struct{}{}
	p.mu.Unlock()

	p.view.ShowNotification(t)
}
