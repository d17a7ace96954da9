// v0
// internal/coordsim/router_test.go
package coordsim

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartenv/nodes/internal/wire"
)

func newTestRouter() http.Handler {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(NewStore(), nil, nil, lg).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSensorDataRoundTrip(t *testing.T) {
	h := newTestRouter()
	tel := wire.Telemetry{Device: "sensornode", Temperature: 23.5, Humidity: 45, Light: 600}
	if rec := doJSON(t, h, http.MethodPost, "/sensor_data", tel); rec.Code != http.StatusOK {
		t.Fatalf("post status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/current_sensor_data", nil)
	var got struct {
		SensorData wire.Telemetry `json:"sensor_data"`
		HasData    bool           `json:"has_data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.HasData || got.SensorData.Temperature != 23.5 {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestPendingRequestFlow(t *testing.T) {
	h := newTestRouter()

	// nothing pending yet
	rec := doJSON(t, h, http.MethodGet, "/get_pending_request", nil)
	var empty wire.PendingRequestReply
	_ = json.NewDecoder(rec.Body).Decode(&empty)
	if empty.RequestID != "" {
		t.Fatalf("pending = %+v, want empty", empty)
	}

	// create one via an action request
	rec = doJSON(t, h, http.MethodPost, "/action_request", map[string]string{"message": "too warm in here"})
	var created map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&created)
	if created["request_id"] == "" {
		t.Fatal("action request must return an id")
	}

	rec = doJSON(t, h, http.MethodGet, "/get_pending_request", nil)
	var pending wire.PendingRequestReply
	_ = json.NewDecoder(rec.Body).Decode(&pending)
	if pending.RequestID != created["request_id"] {
		t.Fatalf("pending id = %q, want %q", pending.RequestID, created["request_id"])
	}

	// service it
	tel := wire.Telemetry{Device: "sensornode", Temperature: 27}
	rec = doJSON(t, h, http.MethodPost, "/provide_sensor_data/"+pending.RequestID, tel)
	if rec.Code != http.StatusOK {
		t.Fatalf("provide status = %d", rec.Code)
	}

	// consumed requests leave the pending queue
	rec = doJSON(t, h, http.MethodGet, "/get_pending_request", nil)
	_ = json.NewDecoder(rec.Body).Decode(&empty)
	if empty.RequestID != "" {
		t.Fatalf("queue not drained: %+v", empty)
	}

	// and report completed with the provided data
	rec = doJSON(t, h, http.MethodGet, "/check_status/"+pending.RequestID, nil)
	var status struct {
		Completed  bool           `json:"completed"`
		SensorData wire.Telemetry `json:"sensor_data"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&status)
	if !status.Completed || status.SensorData.Temperature != 27 {
		t.Fatalf("status = %+v", status)
	}
}

func TestProvideUnknownRequestIs404(t *testing.T) {
	h := newTestRouter()
	rec := doJSON(t, h, http.MethodPost, "/provide_sensor_data/req_ghost", wire.Telemetry{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCommandDeliveryAndAck(t *testing.T) {
	h := newTestRouter()

	if rec := doJSON(t, h, http.MethodPost, "/control_rgb", map[string]string{"color": "cyan"}); rec.Code != http.StatusOK {
		t.Fatalf("control_rgb status = %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/control_buzzer", map[string]string{"action": "double_beep"}); rec.Code != http.StatusOK {
		t.Fatalf("control_buzzer status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/get_commands/actuatornode", nil)
	var bundle wire.CommandReply
	_ = json.NewDecoder(rec.Body).Decode(&bundle)
	if bundle.RGBColor != "cyan" || bundle.BuzzerAction != "double_beep" {
		t.Fatalf("bundle = %+v", bundle)
	}
	if bundle.RequestID == "" {
		t.Fatal("delivered bundle must carry an id")
	}

	// clear-on-read
	rec = doJSON(t, h, http.MethodGet, "/get_commands/actuatornode", nil)
	var second wire.CommandReply
	_ = json.NewDecoder(rec.Body).Decode(&second)
	if !second.Empty() {
		t.Fatalf("second fetch = %+v, want empty", second)
	}

	ack := wire.AckRequest{Device: "actuatornode", RequestID: bundle.RequestID}
	if rec := doJSON(t, h, http.MethodPost, "/commands/ack", ack); rec.Code != http.StatusOK {
		t.Fatalf("ack status = %d", rec.Code)
	}
}

func TestSetOLEDUpdatesActivity(t *testing.T) {
	h := newTestRouter()
	if rec := doJSON(t, h, http.MethodPost, "/set_oled", map[string]string{"text": "Deep work until 5pm"}); rec.Code != http.StatusOK {
		t.Fatalf("set_oled status = %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/current_activity", nil)
	var got wire.SuggestionReply
	_ = json.NewDecoder(rec.Body).Decode(&got)
	if got.Suggestion != "Deep work until 5pm" {
		t.Fatalf("suggestion = %q", got.Suggestion)
	}
}

func TestActionRequestQueuesClassifiedCommands(t *testing.T) {
	h := newTestRouter()
	doJSON(t, h, http.MethodPost, "/action_request", map[string]string{"message": "movie night, purple lights"})

	rec := doJSON(t, h, http.MethodGet, "/get_commands/actuatornode", nil)
	var bundle wire.CommandReply
	_ = json.NewDecoder(rec.Body).Decode(&bundle)
	if bundle.RGBColor != "purple" {
		t.Fatalf("bundle = %+v, want purple rgb", bundle)
	}
	if bundle.OLEDText != "RELAX" {
		t.Fatalf("oled = %q, want RELAX", bundle.OLEDText)
	}
}

func TestUnknownEndpointIsJSON404(t *testing.T) {
	h := newTestRouter()
	rec := doJSON(t, h, http.MethodGet, "/no_such_thing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var got wire.StatusReply
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("404 body must be JSON: %v", err)
	}
	if got.Status != "error" {
		t.Fatalf("body = %+v", got)
	}
}

func TestHistoryLatestDisabled(t *testing.T) {
	h := newTestRouter()
	rec := doJSON(t, h, http.MethodGet, "/history/latest", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealthReportsWiring(t *testing.T) {
	h := newTestRouter()
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	var got map[string]any
	_ = json.NewDecoder(rec.Body).Decode(&got)
	if got["status"] != "healthy" {
		t.Fatalf("health = %+v", got)
	}
	if got["journal_enabled"] != false || got["history_enabled"] != false {
		t.Fatalf("wiring flags = %+v", got)
	}
}
