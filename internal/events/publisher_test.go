package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gemdesk/internal/config"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewPublisherDisabledReturnsNoop(t *testing.T) {
	if _, ok := NewPublisher(nil).(NoopPublisher); !ok {
		t.Fatalf("nil config should produce noop publisher")
	}
	if _, ok := NewPublisher(&config.EventsConfig{Enabled: true}).(NoopPublisher); !ok {
		t.Fatalf("missing brokers should produce noop publisher")
	}
	if err := (NoopPublisher{}).Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("noop publish should not fail: %v", err)
	}
}

func TestKafkaPublisherWritesKeyedMessage(t *testing.T) {
	writer := &recordingWriter{}
	publisher := &KafkaPublisher{writer: writer, timeout: time.Second}

	err := publisher.Publish(context.Background(), Event{
		Type:     "product.saved",
		Table:    "products",
		Action:   "insert",
		EntityID: 42,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != "products" {
		t.Fatalf("unexpected key: %s", msg.Key)
	}
	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode event failed: %v", err)
	}
	if decoded.ID == "" || decoded.EntityID != 42 || decoded.OccurredAt.IsZero() {
		t.Fatalf("unexpected event: %+v", decoded)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[1].Value) != "42" {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}
	if err := publisher.Close(); err != nil || !writer.closed {
		t.Fatalf("close should close writer, err=%v", err)
	}
}

func TestKafkaPublisherPropagatesWriteError(t *testing.T) {
	boom := errors.New("broker down")
	publisher := &KafkaPublisher{writer: &recordingWriter{err: boom}, timeout: time.Second}
	if err := publisher.Publish(context.Background(), Event{Type: "x", Table: "t"}); !errors.Is(err, boom) {
		t.Fatalf("expected broker error, got %v", err)
	}
}

func TestNewKafkaPublisherAppliesDefaults(t *testing.T) {
	publisher := NewKafkaPublisher(&config.EventsConfig{Enabled: true, Brokers: []string{"localhost:9092"}})
	writer, ok := publisher.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("expected kafka writer")
	}
	if writer.Topic != "gemdesk.catalog" || writer.RequiredAcks != kafka.RequireOne {
		t.Fatalf("unexpected writer config: topic=%s acks=%v", writer.Topic, writer.RequiredAcks)
	}
	if publisher.timeout != defaultPublishTimeout {
		t.Fatalf("unexpected publish timeout: %v", publisher.timeout)
	}
	_ = publisher.Close()
}
