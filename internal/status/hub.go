// internal/status/hub.go
package status

import "sync"

// Hub fans status snapshots out to any number of listeners.
// Publish never blocks: a listener whose queue is full misses that snapshot.
type Hub struct {
	mu        sync.Mutex
	next      int
	listeners map[int]chan Snapshot
	last      Snapshot
	closed    bool
}

// NewHub creates a hub whose initial snapshot is initial.
func NewHub(initial Snapshot) *Hub {
	return &Hub{
		listeners: make(map[int]chan Snapshot),
		last:      initial,
	}
}

// Publish records s as current and offers it to every listener.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.last = s
	for _, ch := range h.listeners {
		select {
		case ch <- s:
		default:
		}
	}
}

// Last returns the most recently published snapshot.
func (h *Hub) Last() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Subscribe registers a listener. The channel is closed by Unsubscribe or Close.
func (h *Hub) Subscribe() (int, <-chan Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Snapshot, SubscriberBuffer)
	if h.closed {
		close(ch)
		return -1, ch
	}

	id := h.next
	h.next++
	h.listeners[id] = ch
	return id, ch
}

// Unsubscribe removes a listener. Unknown ids are ignored.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Close drops all listeners; later Publish calls are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.listeners {
		delete(h.listeners, id)
		close(ch)
	}
}
