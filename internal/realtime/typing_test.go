package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type typingRecorder struct {
	mu      sync.Mutex
	signals []TypingPayload
}

func (r *typingRecorder) forward(typing TypingPayload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, typing)
}

func (r *typingRecorder) all() []TypingPayload {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]TypingPayload, len(r.signals))
	copy(out, r.signals)
	return out
}

func TestTypingTrackerForwards(t *testing.T) {
	rec := &typingRecorder{}
	tracker := NewTypingTracker(time.Minute, rec.forward)
	defer tracker.Stop()

	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})

	signals := rec.all()
	require.Len(t, signals, 1)
	require.Equal(t, TypingPayload{From: 1, To: 2, IsTyping: true}, signals[0])
}

func TestTypingTrackerAutoClears(t *testing.T) {
	rec := &typingRecorder{}
	tracker := NewTypingTracker(20*time.Millisecond, rec.forward)
	defer tracker.Stop()

	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})

	require.Eventually(t, func() bool {
		signals := rec.all()
		return len(signals) == 2 && signals[1] == TypingPayload{From: 1, To: 2, IsTyping: false}
	}, time.Second, 5*time.Millisecond, "expected a synthetic stop after the idle window")
}

func TestTypingTrackerExplicitStopCancelsTimer(t *testing.T) {
	rec := &typingRecorder{}
	tracker := NewTypingTracker(20*time.Millisecond, rec.forward)
	defer tracker.Stop()

	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})
	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: false})

	time.Sleep(60 * time.Millisecond)
	signals := rec.all()
	require.Len(t, signals, 2, "no synthetic stop after an explicit one")
}

func TestTypingTrackerRefreshReArms(t *testing.T) {
	rec := &typingRecorder{}
	tracker := NewTypingTracker(50*time.Millisecond, rec.forward)
	defer tracker.Stop()

	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})
	time.Sleep(30 * time.Millisecond)
	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})
	time.Sleep(30 * time.Millisecond)

	// The second signal re-armed the window, so no expiry yet.
	for _, sig := range rec.all() {
		require.True(t, sig.IsTyping)
	}

	require.Eventually(t, func() bool {
		signals := rec.all()
		return len(signals) == 3 && !signals[2].IsTyping
	}, time.Second, 5*time.Millisecond)
}

func TestTypingTrackerStopSilencesPendingTimers(t *testing.T) {
	rec := &typingRecorder{}
	tracker := NewTypingTracker(10*time.Millisecond, rec.forward)

	tracker.Signal(TypingPayload{From: 1, To: 2, IsTyping: true})
	tracker.Stop()

	time.Sleep(40 * time.Millisecond)
	require.Len(t, rec.all(), 1)

	// Signals after Stop are dropped.
	tracker.Signal(TypingPayload{From: 3, To: 4, IsTyping: true})
	require.Len(t, rec.all(), 1)
}
