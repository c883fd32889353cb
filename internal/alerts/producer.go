package alerts

import (
	"fmt"
	"log"

	"github.com/vigil-labs/vigil/internal/verdict"
)

// Producer translates verdict-engine rejections and sweeper summaries into
// alert events and publishes them to the broker. Publish failures are
// logged and swallowed: the caller's result never depends on delivery.
type Producer struct {
	broker Broker
}

// NewProducer creates a Producer that publishes to the given broker.
func NewProducer(broker Broker) *Producer {
	return &Producer{broker: broker}
}

// PublishInputAlert publishes one event for a rejected input. It satisfies
// the verdict engine's AlertPublisher contract.
func (p *Producer) PublishInputAlert(kind verdict.InputKind, identifier, message string) {
	title := inputAlertTitle(kind)
	event := NewEvent(TopicInputAlert, title, fmt.Sprintf("%s: %s", message, identifier))
	if err := p.broker.Publish(TopicInputAlert, event); err != nil {
		log.Printf("alerts: failed to publish input alert: %v", err)
	}
}

// PublishSweepSummary publishes the periodic block list summary.
func (p *Producer) PublishSweepSummary(total int, byKind map[verdict.InputKind]int) {
	body := fmt.Sprintf("%d identifiers blocked (%d emails, %d phones, %d urls)",
		total,
		byKind[verdict.InputEmail],
		byKind[verdict.InputPhone],
		byKind[verdict.InputURL])

	event := NewEvent(TopicSweepSummary, "Block list summary", body)
	if err := p.broker.Publish(TopicSweepSummary, event); err != nil {
		log.Printf("alerts: failed to publish sweep summary: %v", err)
	}
}

func inputAlertTitle(kind verdict.InputKind) string {
	switch kind {
	case verdict.InputEmail:
		return "Spam alert"
	case verdict.InputPhone:
		return "Spam call alert"
	case verdict.InputURL:
		return "Security alert"
	default:
		return "Alert"
	}
}
