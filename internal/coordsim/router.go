// v1
// internal/coordsim/router.go
package coordsim

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"smartenv/nodes/internal/wire"
)

// Server wires the coordinator endpoints the device nodes poll plus the
// small operator surface that feeds them.
type Server struct {
	store   *Store
	journal *Journal
	history *History
	lg      *slog.Logger
}

func NewServer(store *Store, journal *Journal, history *History, lg *slog.Logger) *Server {
	return &Server{store: store, journal: journal, history: history, lg: lg}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	// device-facing
	r.HandleFunc("/sensor_data", s.postSensorData).Methods(http.MethodPost)
	r.HandleFunc("/get_pending_request", s.getPendingRequest).Methods(http.MethodGet)
	r.HandleFunc("/provide_sensor_data/{request_id}", s.postProvideSensorData).Methods(http.MethodPost)
	r.HandleFunc("/get_commands/{device}", s.getCommands).Methods(http.MethodGet)
	r.HandleFunc("/commands/ack", s.postAck).Methods(http.MethodPost)
	r.HandleFunc("/current_activity", s.getCurrentActivity).Methods(http.MethodGet)

	// operator-facing
	r.HandleFunc("/action_request", s.postActionRequest).Methods(http.MethodPost)
	r.HandleFunc("/set_oled", s.postSetOLED).Methods(http.MethodPost)
	r.HandleFunc("/control_rgb", s.postControlRGB).Methods(http.MethodPost)
	r.HandleFunc("/control_buzzer", s.postControlBuzzer).Methods(http.MethodPost)
	r.HandleFunc("/current_sensor_data", s.getCurrentSensorData).Methods(http.MethodGet)
	r.HandleFunc("/history/latest", s.getHistoryLatest).Methods(http.MethodGet)
	r.HandleFunc("/check_status/{request_id}", s.getCheckStatus).Methods(http.MethodGet)
	r.HandleFunc("/health", s.getHealth).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, wire.StatusReply{Status: "error", Error: "endpoint not found"})
	})
	return r
}

func (s *Server) postSensorData(w http.ResponseWriter, r *http.Request) {
	var t wire.Telemetry
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "invalid JSON"})
		return
	}
	s.store.UpdateSnapshot(t)
	s.history.Insert(t)
	s.journal.Record(r.Context(), "sensor_data", t)
	s.lg.Info("sensor data received", "device", t.Device,
		"temperature", t.Temperature, "light", t.Light)
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success"})
}

func (s *Server) getPendingRequest(w http.ResponseWriter, _ *http.Request) {
	reply, ok := s.store.OldestWaiting()
	if !ok {
		writeJSON(w, http.StatusOK, wire.PendingRequestReply{RequestID: ""})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) postProvideSensorData(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["request_id"]
	var t wire.Telemetry
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "invalid JSON"})
		return
	}
	if err := s.store.Provide(id, t); err != nil {
		writeJSON(w, http.StatusNotFound, wire.StatusReply{Status: "error", Error: "invalid request ID"})
		return
	}
	s.journal.Record(r.Context(), "sensor_data_provided", map[string]any{"request_id": id, "telemetry": t})
	s.lg.Info("request serviced", "request_id", id, "device", t.Device)
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success", Message: "sensor data recorded"})
}

func (s *Server) getCommands(w http.ResponseWriter, r *http.Request) {
	device := mux.Vars(r)["device"]
	bundle, ok := s.store.TakeBundle(device)
	if !ok {
		// no queued commands; the device keeps its current state
		writeJSON(w, http.StatusOK, wire.CommandReply{})
		return
	}
	s.journal.Record(r.Context(), "commands_delivered", map[string]any{"device": device, "bundle": bundle})
	s.lg.Info("commands delivered", "device", device, "request_id", bundle.RequestID)
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) postAck(w http.ResponseWriter, r *http.Request) {
	var ack wire.AckRequest
	if err := json.NewDecoder(r.Body).Decode(&ack); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "invalid JSON"})
		return
	}
	matched := s.store.AckBundle(ack.Device, ack.RequestID)
	s.journal.Record(r.Context(), "commands_acked", ack)
	if !matched {
		s.lg.Warn("ack for unknown bundle", "device", ack.Device, "request_id", ack.RequestID)
	}
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success"})
}

func (s *Server) getCurrentActivity(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, wire.SuggestionReply{Suggestion: s.store.Activity()})
}

// postActionRequest queues a sensor-data request derived from a free-text
// message and queues any hardware commands the message implies.
func (s *Server) postActionRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
		Device  string `json:"device"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "message required"})
		return
	}
	if body.Device == "" {
		body.Device = "actuatornode"
	}
	id := s.store.CreateRequest(body.Message)
	if cmd := ClassifyMessage(body.Message); !cmd.Empty() {
		if cmd.OLEDText != "" {
			s.store.SetActivity(cmd.OLEDText)
		}
		s.store.QueueCommand(body.Device, cmd)
	}
	s.journal.Record(r.Context(), "action_request", map[string]string{"request_id": id, "message": body.Message})
	s.lg.Info("action request created", "request_id", id)
	writeJSON(w, http.StatusOK, map[string]string{"request_id": id, "status": "waiting_for_sensors"})
}

func (s *Server) postSetOLED(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text   string `json:"text"`
		Device string `json:"device"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "invalid JSON"})
		return
	}
	if body.Text == "" {
		body.Text = "Ready"
	}
	if body.Device == "" {
		body.Device = "actuatornode"
	}
	s.store.SetActivity(body.Text)
	s.store.QueueCommand(body.Device, wire.CommandReply{OLEDText: body.Text})
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success", Message: "OLED set to: " + body.Text})
}

func (s *Server) postControlRGB(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Color  string `json:"color"`
		Device string `json:"device"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Color == "" {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "color required"})
		return
	}
	if body.Device == "" {
		body.Device = "actuatornode"
	}
	s.store.QueueCommand(body.Device, wire.CommandReply{RGBColor: body.Color})
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success", Message: "color queued: " + body.Color})
}

func (s *Server) postControlBuzzer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Action string `json:"action"`
		Device string `json:"device"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Action == "" {
		writeJSON(w, http.StatusBadRequest, wire.StatusReply{Status: "error", Error: "action required"})
		return
	}
	if body.Device == "" {
		body.Device = "actuatornode"
	}
	s.store.QueueCommand(body.Device, wire.CommandReply{BuzzerAction: body.Action})
	writeJSON(w, http.StatusOK, wire.StatusReply{Status: "success", Message: "buzzer queued: " + body.Action})
}

func (s *Server) getCurrentSensorData(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.store.Snapshot()
	reply := map[string]any{
		"status":           "success",
		"sensor_data":      snap,
		"has_data":         ok,
		"current_activity": s.store.Activity(),
		"timestamp":        time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) getHistoryLatest(w http.ResponseWriter, _ *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusNotFound, wire.StatusReply{Status: "error", Error: "history disabled"})
		return
	}
	t, err := s.history.Latest()
	if err != nil {
		writeJSON(w, http.StatusNotFound, wire.StatusReply{Status: "error", Error: "no history"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "sensor_data": t})
}

func (s *Server) getCheckStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["request_id"]
	consumed, t, ok := s.store.RequestState(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, wire.StatusReply{Status: "error", Error: "invalid request ID"})
		return
	}
	reply := map[string]any{"request_id": id, "completed": consumed}
	if t != nil {
		reply["sensor_data"] = t
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"journal_enabled": s.journal != nil,
		"history_enabled": s.history != nil,
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
