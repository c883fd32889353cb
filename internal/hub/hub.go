package hub

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vigil-labs/vigil/internal/alerts"
)

// observerBuffer is the per-observer queue depth. A full buffer marks the
// observer as a slow consumer and the event is dropped for that observer
// only.
const observerBuffer = 64

// Observer is one live-connected alert consumer. It is created by
// Subscribe, destroyed by Unsubscribe (or transport disconnect), and owned
// exclusively by the Hub's registry.
type Observer struct {
	ID   string
	send chan alerts.Event
}

// Events returns the observer's delivery channel. The Hub closes it when
// the observer is unsubscribed.
func (o *Observer) Events() <-chan alerts.Event {
	return o.send
}

// Hub fans alert events out to every registered observer. Delivery is
// best-effort and at most once: observers that connect after an event was
// published never receive it, and a slow or dead observer never affects
// delivery to the others. It is safe for concurrent use.
type Hub struct {
	mu         sync.RWMutex
	observers  map[string]*Observer
	register   chan *Observer
	unregister chan *Observer
	broadcast  chan alerts.Event

	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// New allocates a Hub. Call Run() in a goroutine to start the event loop.
func New() *Hub {
	return &Hub{
		observers:  make(map[string]*Observer),
		register:   make(chan *Observer, 16),
		unregister: make(chan *Observer, 16),
		broadcast:  make(chan alerts.Event, 256),
	}
}

// Run is the hub's main event loop. It must be executed in a dedicated
// goroutine and runs for the life of the process.
func (h *Hub) Run() {
	for {
		select {
		case o := <-h.register:
			h.mu.Lock()
			h.observers[o.ID] = o
			h.mu.Unlock()
			log.Printf("hub: observer %s subscribed", o.ID)

		case o := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.observers[o.ID]; ok {
				delete(h.observers, o.ID)
				close(o.send)
			}
			h.mu.Unlock()
			log.Printf("hub: observer %s unsubscribed", o.ID)

		case event := <-h.broadcast:
			h.fanOut(event)
		}
	}
}

// fanOut attempts delivery to each observer independently and tallies the
// outcome. Events for a single observer arrive in publish order through its
// dedicated channel.
func (h *Hub) fanOut(event alerts.Event) {
	var delivered, dropped int

	h.mu.RLock()
	for _, o := range h.observers {
		select {
		case o.send <- event:
			delivered++
		default:
			// Slow consumer: drop for this observer rather than block the
			// fan-out.
			dropped++
		}
	}
	h.mu.RUnlock()

	h.delivered.Add(uint64(delivered))
	if dropped > 0 {
		h.dropped.Add(uint64(dropped))
		log.Printf("hub: event %s dropped for %d slow observer(s)", event.ID, dropped)
	}
}

// Subscribe registers a new observer and returns its handle.
func (h *Hub) Subscribe() *Observer {
	o := &Observer{
		ID:   uuid.New().String(),
		send: make(chan alerts.Event, observerBuffer),
	}
	h.register <- o
	return o
}

// Unsubscribe removes an observer from the registry and closes its channel.
// Unsubscribing an unknown observer is a no-op.
func (h *Hub) Unsubscribe(o *Observer) {
	h.unregister <- o
}

// Publish enqueues an event for fan-out to all currently-registered
// observers. It never fails and never blocks on observer delivery.
func (h *Hub) Publish(event alerts.Event) {
	h.broadcast <- event
}

// ObserverCount reports how many observers are currently registered.
func (h *Hub) ObserverCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Stats returns the lifetime delivery tally.
func (h *Hub) Stats() (delivered, dropped uint64) {
	return h.delivered.Load(), h.dropped.Load()
}
