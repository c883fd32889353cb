package alerts

// Broker is the publish/subscribe transport for alert events.
// Implementations include InMemoryBroker (single-node) and KafkaBroker
// (distributed setups).
type Broker interface {
	// Publish sends an event to the given topic. Subscribers registered for
	// that topic receive the event asynchronously; delivery is best-effort
	// and at most once.
	Publish(topic string, event Event) error

	// Subscribe registers a handler that is called for every event published
	// to the given topic. It returns a subscription ID.
	Subscribe(topic string, handler EventHandler) (string, error)

	// Close shuts down the broker and releases its resources. Publish and
	// Subscribe must not be called after Close returns.
	Close() error
}
