package alerts

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/vigil-labs/vigil/internal/verdict"
)

// captureBroker records published events synchronously for assertions.
type captureBroker struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (b *captureBroker) Publish(topic string, event Event) error {
	if b.fail {
		return fmt.Errorf("broker is closed")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *captureBroker) Subscribe(topic string, handler EventHandler) (string, error) {
	return "", nil
}

func (b *captureBroker) Close() error { return nil }

func (b *captureBroker) published() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.events...)
}

func TestProducer_PublishInputAlert(t *testing.T) {
	broker := &captureBroker{}
	p := NewProducer(broker)

	p.PublishInputAlert(verdict.InputEmail, "a@b.com", "fake or leaked email detected")

	events := broker.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Topic != TopicInputAlert {
		t.Errorf("expected topic %s, got %s", TopicInputAlert, e.Topic)
	}
	if e.Title != "Spam alert" {
		t.Errorf("expected email alert title, got %q", e.Title)
	}
	if !strings.Contains(e.Message, "a@b.com") {
		t.Errorf("expected message to carry the identifier, got %q", e.Message)
	}
}

func TestProducer_TitlePerKind(t *testing.T) {
	tests := []struct {
		kind  verdict.InputKind
		title string
	}{
		{verdict.InputEmail, "Spam alert"},
		{verdict.InputPhone, "Spam call alert"},
		{verdict.InputURL, "Security alert"},
	}

	for _, tt := range tests {
		broker := &captureBroker{}
		NewProducer(broker).PublishInputAlert(tt.kind, "x", "rejected")
		events := broker.published()
		if len(events) != 1 || events[0].Title != tt.title {
			t.Errorf("kind %s: expected title %q, got %+v", tt.kind, tt.title, events)
		}
	}
}

func TestProducer_PublishSweepSummary(t *testing.T) {
	broker := &captureBroker{}
	p := NewProducer(broker)

	p.PublishSweepSummary(6, map[verdict.InputKind]int{
		verdict.InputEmail: 3,
		verdict.InputPhone: 1,
		verdict.InputURL:   2,
	})

	events := broker.published()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Topic != TopicSweepSummary {
		t.Errorf("expected topic %s, got %s", TopicSweepSummary, e.Topic)
	}
	if !strings.Contains(e.Message, "6 identifiers blocked") {
		t.Errorf("expected total in message, got %q", e.Message)
	}
	if !strings.Contains(e.Message, "3 emails") || !strings.Contains(e.Message, "2 urls") {
		t.Errorf("expected per-kind counts in message, got %q", e.Message)
	}
}

func TestProducer_PublishFailureIsSwallowed(t *testing.T) {
	broker := &captureBroker{fail: true}
	p := NewProducer(broker)

	// Must not panic or propagate: publishing is fire-and-forget.
	p.PublishInputAlert(verdict.InputURL, "https://x.test", "unsafe website detected")
	p.PublishSweepSummary(1, nil)
}
