// v0
// internal/coordsim/store_test.go
package coordsim

import (
	"testing"

	"smartenv/nodes/internal/wire"
)

func TestStorePendingRequestLifecycle(t *testing.T) {
	s := NewStore()
	if _, ok := s.OldestWaiting(); ok {
		t.Fatal("fresh store must have no pending request")
	}

	first := s.CreateRequest("make it cozy")
	second := s.CreateRequest("too bright")

	reply, ok := s.OldestWaiting()
	if !ok || reply.RequestID != first {
		t.Fatalf("oldest = %+v, want %s", reply, first)
	}

	if err := s.Provide(first, wire.Telemetry{Device: "sensornode", Temperature: 22}); err != nil {
		t.Fatalf("provide: %v", err)
	}
	reply, ok = s.OldestWaiting()
	if !ok || reply.RequestID != second {
		t.Fatalf("after consuming first, oldest = %+v, want %s", reply, second)
	}

	if err := s.Provide(first, wire.Telemetry{}); err != ErrUnknownRequest {
		t.Fatalf("re-providing a consumed request: err=%v, want ErrUnknownRequest", err)
	}
	if err := s.Provide("req_nope", wire.Telemetry{}); err != ErrUnknownRequest {
		t.Fatalf("unknown id: err=%v, want ErrUnknownRequest", err)
	}
}

func TestStoreBundleClearOnRead(t *testing.T) {
	s := NewStore()
	if _, ok := s.TakeBundle("actuatornode"); ok {
		t.Fatal("no draft queued, TakeBundle must report none")
	}

	s.QueueCommand("actuatornode", wire.CommandReply{RGBColor: "red"})
	s.QueueCommand("actuatornode", wire.CommandReply{BuzzerAction: "beep"})

	bundle, ok := s.TakeBundle("actuatornode")
	if !ok {
		t.Fatal("queued draft must be delivered")
	}
	if bundle.RGBColor != "red" || bundle.BuzzerAction != "beep" {
		t.Fatalf("bundle = %+v, want merged draft", bundle)
	}
	if bundle.RequestID == "" {
		t.Fatal("delivered bundle must carry an id")
	}
	if bundle.OLEDText != "Ready" {
		t.Fatalf("oled text = %q, want current activity", bundle.OLEDText)
	}

	if _, ok := s.TakeBundle("actuatornode"); ok {
		t.Fatal("second fetch must be empty (clear-on-read)")
	}
}

func TestStoreAckMatchesDeliveredID(t *testing.T) {
	s := NewStore()
	s.QueueCommand("actuatornode", wire.CommandReply{RGBColor: "green"})
	bundle, _ := s.TakeBundle("actuatornode")

	if s.AckBundle("actuatornode", "cmd_wrong") {
		t.Fatal("mismatched ack must not match")
	}
	if !s.AckBundle("actuatornode", bundle.RequestID) {
		t.Fatal("matching ack must succeed")
	}
	if s.AckBundle("actuatornode", bundle.RequestID) {
		t.Fatal("double ack must not match")
	}
}

func TestStoreSnapshotAndActivity(t *testing.T) {
	s := NewStore()
	if _, ok := s.Snapshot(); ok {
		t.Fatal("fresh store has no snapshot")
	}
	s.UpdateSnapshot(wire.Telemetry{Device: "sensornode", Light: 512})
	snap, ok := s.Snapshot()
	if !ok || snap.Light != 512 {
		t.Fatalf("snapshot = %+v ok=%v", snap, ok)
	}
	if s.Activity() != "Ready" {
		t.Fatalf("default activity = %q", s.Activity())
	}
	s.SetActivity("RELAX")
	if s.Activity() != "RELAX" {
		t.Fatalf("activity = %q", s.Activity())
	}
}
