package transport

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

// EventBuffer keeps the most recent committed chain events.
type EventBuffer struct {
	mu    sync.Mutex
	ring  []chain.Event
	next  int
	full  bool
	total uint64
}

// NewEventBuffer keeps up to size events.
func NewEventBuffer(size int) *EventBuffer {
	if size <= 0 {
		size = 1024
	}
	return &EventBuffer{ring: make([]chain.Event, size)}
}

// Follow subscribes the buffer to the chain feed until the returned subscription is
// cancelled.
func (b *EventBuffer) Follow(c *chain.Chain) event.Subscription {
	ch := make(chan chain.Event, 128)
	sub := c.Subscribe(ch)
	go func() {
		for {
			select {
			case ev := <-ch:
				b.Add(ev)
			case <-sub.Err():
				return
			}
		}
	}()
	return sub
}

// Add appends ev, evicting the oldest event when full.
func (b *EventBuffer) Add(ev chain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.next] = ev
	b.next = (b.next + 1) % len(b.ring)
	if b.next == 0 {
		b.full = true
	}
	b.total++
}

// Recent returns up to limit events, oldest first.
func (b *EventBuffer) Recent(limit int) []chain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.next
	if b.full {
		n = len(b.ring)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]chain.Event, 0, limit)
	for i := n - limit; i < n; i++ {
		idx := i
		if b.full {
			idx = (b.next + i) % len(b.ring)
		}
		out = append(out, b.ring[idx])
	}
	return out
}

// Total is the number of events seen since start.
func (b *EventBuffer) Total() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}
