package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu     sync.Mutex
	events []Event
	reject bool
}

func (c *fakeChannel) Send(event Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reject {
		return false
	}
	c.events = append(c.events, event)
	return true
}

func (c *fakeChannel) received() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestRegistryRegisterReplacesPrior(t *testing.T) {
	registry := NewRegistry()
	first := &fakeChannel{}
	second := &fakeChannel{}

	registry.Register(7, first)
	registry.Register(7, second)

	ch, ok := registry.Lookup(7)
	require.True(t, ok)
	require.Same(t, second, ch, "later registration wins")
	require.Equal(t, 1, registry.Size())
}

func TestRegistryUnregisterOnlyWhenOwned(t *testing.T) {
	registry := NewRegistry()
	stale := &fakeChannel{}
	fresh := &fakeChannel{}

	registry.Register(7, stale)
	registry.Register(7, fresh)

	// The stale connection closing must not evict the fresh one.
	require.False(t, registry.Unregister(7, stale))
	ch, ok := registry.Lookup(7)
	require.True(t, ok)
	require.Same(t, fresh, ch)

	require.True(t, registry.Unregister(7, fresh))
	_, ok = registry.Lookup(7)
	require.False(t, ok)
	require.Zero(t, registry.Size())
}

func TestRegistryUnregisterUnknownUser(t *testing.T) {
	registry := NewRegistry()
	require.False(t, registry.Unregister(99, &fakeChannel{}))
}

func TestRegistryAllSnapshot(t *testing.T) {
	registry := NewRegistry()
	registry.Register(1, &fakeChannel{})
	registry.Register(2, &fakeChannel{})

	require.Len(t, registry.All(), 2)
	require.Equal(t, 2, registry.Size())
}
