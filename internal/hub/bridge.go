package hub

import (
	"log"

	"github.com/vigil-labs/vigil/internal/alerts"
)

// Bridge subscribes the Hub to every alert topic on the broker, so that
// events published anywhere (this node or, with Kafka, any node in the
// group) reach the locally-connected observers.
func Bridge(broker alerts.Broker, h *Hub) error {
	for _, topic := range alerts.AllTopics {
		if _, err := broker.Subscribe(topic, func(event alerts.Event) {
			h.Publish(event)
		}); err != nil {
			return err
		}
		log.Printf("hub: bridged to topic %s", topic)
	}
	return nil
}
