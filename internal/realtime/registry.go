package realtime

import "sync"

// Channel is a live outbound path to one connected user. Send must not
// block: implementations enqueue onto a bounded buffer and report false
// when the frame was dropped or the channel is closed.
type Channel interface {
	Send(event Event) bool
}

// Registry maps a user identifier to at most one live channel. A later
// Register for the same user silently replaces the earlier one; the
// replaced channel is not closed here, that stays with its owning
// connection. Unregister only removes the slot when the caller still
// owns it, which resolves a stale close racing a fresher registration.
type Registry struct {
	mu       sync.RWMutex
	channels map[uint]Channel
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[uint]Channel)}
}

// Register associates userID with ch, replacing any prior association.
func (r *Registry) Register(userID uint, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels[userID] = ch
}

// Unregister removes the association for userID if ch still occupies the
// slot. Returns true when an entry was removed.
func (r *Registry) Unregister(userID uint, ch Channel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.channels[userID]
	if !ok || current != ch {
		return false
	}
	delete(r.channels, userID)
	return true
}

// Lookup returns the live channel for userID, if any.
func (r *Registry) Lookup(userID uint) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ch, ok := r.channels[userID]
	return ch, ok
}

// All returns a snapshot of every registered channel.
func (r *Registry) All() []Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channels := make([]Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		channels = append(channels, ch)
	}
	return channels
}

// Size returns the number of registered channels.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.channels)
}
