package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	WorkerID string
	Event    string
	Data     interface{}
}

// Hub manages SSE subscribers keyed by worker id
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  10,
	}
}

// Subscribe registers a new subscriber for a worker and returns the event channel and cleanup function
func (h *Hub) Subscribe(workerID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)

	if h.subscribers[workerID] == nil {
		h.subscribers[workerID] = make(map[chan Event]struct{})
	}
	h.subscribers[workerID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[workerID], ch)
			close(ch)
			if len(h.subscribers[workerID]) == 0 {
				delete(h.subscribers, workerID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a specific worker
func (h *Hub) Publish(workerID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.WorkerID = workerID
	for ch := range h.subscribers[workerID] {
		select {
		case ch <- event:
		default:
			// slow consumer, drop
		}
	}
}

// PublishToMany sends an event to multiple workers, once per worker
func (h *Hub) PublishToMany(workerIDs []string, event Event) {
	seen := make(map[string]struct{}, len(workerIDs))
	for _, id := range workerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		h.Publish(id, event)
	}
}

// SubscriberCount returns the number of active subscribers for a worker
func (h *Hub) SubscriberCount(workerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[workerID])
}

// TotalSubscribers returns the total number of active subscribers across all workers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
