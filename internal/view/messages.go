package view

import (
	"sync"
	"time"
)

// MessageTTL is how long a transient status message stays visible.
const MessageTTL = 3 * time.Second

// MessageBoard holds one transient message per target. Each Set schedules
// its own non-cancelable clear, so a rapid sequence of calls can race and
// the last-scheduled clear wins.
type MessageBoard struct {
	mu       sync.Mutex
	ttl      time.Duration
	messages map[string]boardEntry
	onChange func(target, text string, kind Kind)
}

type boardEntry struct {
	Text string
	Kind Kind
}

// NewMessageBoard creates a board with the given TTL; zero means MessageTTL.
// onChange, if non-nil, fires on every set and clear.
func NewMessageBoard(ttl time.Duration, onChange func(target, text string, kind Kind)) *MessageBoard {
	if ttl <= 0 {
		ttl = MessageTTL
	}
	return &MessageBoard{
		ttl:      ttl,
		messages: make(map[string]boardEntry),
		onChange: onChange,
	}
}

func (b *MessageBoard) Set(target, text string, kind Kind) {
	b.mu.Lock()
	b.messages[target] = boardEntry{Text: text, Kind: kind}
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(target, text, kind)
	}

	// Clears unconditionally once due, even if a newer message replaced
	// this one in the meantime.
	time.AfterFunc(b.ttl, func() {
		b.clear(target)
	})
}

func (b *MessageBoard) clear(target string) {
	b.mu.Lock()
	_, had := b.messages[target]
	delete(b.messages, target)
	b.mu.Unlock()

	if had && b.onChange != nil {
		b.onChange(target, "", "")
	}
}

// Get returns the currently displayed message for a target.
func (b *MessageBoard) Get(target string) (string, Kind, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.messages[target]
	return entry.Text, entry.Kind, ok
}
