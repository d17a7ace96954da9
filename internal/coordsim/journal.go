// v1
// internal/coordsim/journal.go
package coordsim

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// journalWriter is the write capability of kafka.Writer, split out so tests
// can capture messages without a broker.
type journalWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Journal appends coordinator events (telemetry pushes, request lifecycle,
// command acks) to a Kafka topic. Writes are best-effort: a failed append is
// logged and dropped, never surfaced to the device.
type Journal struct {
	w  journalWriter
	lg *slog.Logger
}

// event is the journal record schema.
type event struct {
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload,omitempty"`
}

// NewJournal builds a Kafka-backed journal. Returns nil when no brokers are
// configured; callers treat a nil journal as disabled.
func NewJournal(brokers []string, topic string, lg *slog.Logger) *Journal {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // partition by event kind
		RequiredAcks: kafka.RequireOne,
	}
	lg.Info("journal enabled", "brokers", brokers, "topic", topic)
	return &Journal{w: w, lg: lg}
}

// Record appends one event. Safe to call on a nil journal.
func (j *Journal) Record(ctx context.Context, kind string, payload any) {
	if j == nil {
		return
	}
	body, err := json.Marshal(event{Kind: kind, Timestamp: time.Now().UnixMilli(), Payload: payload})
	if err != nil {
		j.lg.Warn("journal marshal failed", "kind", kind, "error", err)
		return
	}
	msg := kafka.Message{Key: []byte(kind), Value: body}
	if err := j.w.WriteMessages(ctx, msg); err != nil {
		j.lg.Warn("journal append failed", "kind", kind, "error", err)
	}
}

// Close shuts the underlying writer down. Safe on nil.
func (j *Journal) Close() {
	if j == nil {
		return
	}
	if err := j.w.Close(); err != nil {
		j.lg.Warn("journal close failed", "error", err)
	}
}
