// v0
// internal/coordinator/client_test.go
package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartenv/nodes/internal/wire"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPendingRequestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_pending_request" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(wire.PendingRequestReply{RequestID: "req_42"})
	}))
	defer srv.Close()

	c := New(srv.URL, "sensornode", srv.Client(), discard())
	req, ok, err := c.PendingRequest(context.Background())
	if err != nil {
		t.Fatalf("pending request: %v", err)
	}
	if !ok || req.ID != "req_42" {
		t.Fatalf("got %+v ok=%v", req, ok)
	}
}

func TestPendingRequestEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(wire.PendingRequestReply{RequestID: ""})
	}))
	defer srv.Close()

	c := New(srv.URL, "sensornode", srv.Client(), discard())
	_, ok, err := c.PendingRequest(context.Background())
	if err != nil {
		t.Fatalf("empty payload is not an error: %v", err)
	}
	if ok {
		t.Fatal("empty request_id must report no pending request")
	}
}

func TestCommandsUsesDevicePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get_commands/actuatornode" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(wire.CommandReply{RequestID: "b1", RGBColor: "red"})
	}))
	defer srv.Close()

	c := New(srv.URL, "actuatornode", srv.Client(), discard())
	reply, ok, err := c.Commands(context.Background())
	if err != nil || !ok {
		t.Fatalf("commands: ok=%v err=%v", ok, err)
	}
	if reply.RGBColor != "red" || reply.RequestID != "b1" {
		t.Fatalf("reply = %+v", reply)
	}
}

func TestCommandsEmptyBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL, "actuatornode", srv.Client(), discard())
	if _, ok, err := c.Commands(context.Background()); err != nil || ok {
		t.Fatalf("empty bundle: ok=%v err=%v", ok, err)
	}
}

func TestNonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "sensornode", srv.Client(), discard())
	if _, _, err := c.PendingRequest(context.Background()); err == nil {
		t.Fatal("500 must surface as an error")
	}
	if err := c.PushTelemetry(context.Background(), wire.Telemetry{Device: "sensornode"}); err == nil {
		t.Fatal("500 on push must surface as an error")
	}
}

func TestMalformedPayloadIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, "sensornode", srv.Client(), discard())
	_, err := c.Suggestion(context.Background())
	if err == nil {
		t.Fatal("malformed payload must surface as an error")
	}
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("error %v must wrap ErrMalformed", err)
	}
}

func TestProvideSensorDataPostsBody(t *testing.T) {
	var got wire.Telemetry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/provide_sensor_data/req_9" || r.Method != http.MethodPost {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(wire.StatusReply{Status: "success"})
	}))
	defer srv.Close()

	c := New(srv.URL, "sensornode", srv.Client(), discard())
	tel := wire.Telemetry{Device: "sensornode", Temperature: 22.5, Humidity: 40, Light: 300}
	if err := c.ProvideSensorData(context.Background(), "req_9", tel); err != nil {
		t.Fatalf("provide: %v", err)
	}
	if got.Device != "sensornode" || got.Temperature != 22.5 {
		t.Fatalf("server saw %+v", got)
	}
}

func TestAcknowledgeSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "actuatornode", srv.Client(), discard())
	// must not panic or propagate anything
	c.Acknowledge(context.Background(), "b1")
}
