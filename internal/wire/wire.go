// v1
// internal/wire/wire.go
package wire

// JSON payloads exchanged with the coordinator. Field names are part of the
// wire contract and must not change. Fields absent from a payload decode to
// their zero value; decoders never treat a missing field as an error.

// Telemetry is the sensor snapshot a node pushes to the coordinator and the
// body it attaches when servicing a pending sensor-data request.
type Telemetry struct {
	Device      string  `json:"device"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       int     `json:"light"`
	Touch       *bool   `json:"touch,omitempty"`
}

// PendingRequestReply answers GET /get_pending_request. An empty RequestID
// means nothing is waiting for sensors.
type PendingRequestReply struct {
	RequestID   string `json:"request_id"`
	UserMessage string `json:"user_message,omitempty"`
}

// CommandReply answers GET /get_commands/{device}. All fields are optional;
// RequestID identifies the bundle for dedup and acknowledgement and may be
// empty when the coordinator relies on clear-on-read semantics alone.
type CommandReply struct {
	RequestID    string `json:"request_id,omitempty"`
	OLEDText     string `json:"oled_text,omitempty"`
	RGBColor     string `json:"rgb_color,omitempty"`
	BuzzerAction string `json:"buzzer_action,omitempty"`
	Suggestion   string `json:"suggestion,omitempty"`
	Response     string `json:"response,omitempty"`
}

// Empty reports whether the reply carries nothing to apply.
func (c CommandReply) Empty() bool {
	return c.RequestID == "" && c.OLEDText == "" && c.RGBColor == "" &&
		c.BuzzerAction == "" && c.Suggestion == "" && c.Response == ""
}

// SuggestionReply answers GET /current_activity.
type SuggestionReply struct {
	Suggestion string `json:"suggestion"`
}

// AckRequest is the body of POST /commands/ack.
type AckRequest struct {
	Device    string `json:"device"`
	RequestID string `json:"request_id"`
}

// StatusReply is the generic coordinator acknowledgement body.
type StatusReply struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
