package realtime

import (
	"sync"
	"time"
)

type typingKey struct {
	from uint
	to   uint
}

// TypingTracker keeps the last typing signal per (from, to) pair and
// auto-clears it after an idle window when no refresh arrives, so a
// client that vanishes mid-keystroke never leaves a counterpart staring
// at a stuck indicator. Nothing here is persisted.
type TypingTracker struct {
	mu      sync.Mutex
	timers  map[typingKey]*time.Timer
	idleTTL time.Duration
	forward func(typing TypingPayload)
	stopped bool
}

// NewTypingTracker creates a tracker that forwards typing signals via
// the given callback.
func NewTypingTracker(idleTTL time.Duration, forward func(typing TypingPayload)) *TypingTracker {
	if idleTTL <= 0 {
		idleTTL = 4 * time.Second
	}
	return &TypingTracker{
		timers:  make(map[typingKey]*time.Timer),
		idleTTL: idleTTL,
		forward: forward,
	}
}

// Signal forwards the indicator to the counterpart and re-arms or
// cancels the auto-clear for the pair.
func (t *TypingTracker) Signal(typing TypingPayload) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}

	key := typingKey{from: typing.From, to: typing.To}
	if timer, ok := t.timers[key]; ok {
		timer.Stop()
		delete(t.timers, key)
	}

	if typing.IsTyping {
		t.timers[key] = time.AfterFunc(t.idleTTL, func() {
			t.expire(key)
		})
	}
	t.mu.Unlock()

	t.forward(typing)
}

func (t *TypingTracker) expire(key typingKey) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if _, ok := t.timers[key]; !ok {
		t.mu.Unlock()
		return
	}
	delete(t.timers, key)
	t.mu.Unlock()

	t.forward(TypingPayload{From: key.from, To: key.to, IsTyping: false})
}

// Stop cancels every pending auto-clear.
func (t *TypingTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	for key, timer := range t.timers {
		timer.Stop()
		delete(t.timers, key)
	}
}
