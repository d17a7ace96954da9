// v1
// internal/coordsim/store.go

// Package coordsim is a development coordinator standing in for the
// production server the device nodes poll. It keeps all state in memory and
// optionally journals events to Kafka and sensor history to Postgres.
package coordsim

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartenv/nodes/internal/wire"
)

// ErrUnknownRequest is returned when sensor data arrives for an id that was
// never issued or already consumed.
var ErrUnknownRequest = errors.New("unknown request id")

type pendingEntry struct {
	id          string
	userMessage string
	createdAt   time.Time
	consumed    bool
	telemetry   *wire.Telemetry
}

// Store is the coordinator's in-memory state: the latest sensor snapshot,
// the current activity text, pending sensor-data requests in arrival order,
// and one draft command bundle per device.
type Store struct {
	mu       sync.Mutex
	snapshot wire.Telemetry
	hasSnap  bool
	activity string

	pending map[string]*pendingEntry
	order   []string

	drafts    map[string]wire.CommandReply
	delivered map[string]string // device -> last delivered bundle id
}

func NewStore() *Store {
	return &Store{
		activity:  "Ready",
		pending:   map[string]*pendingEntry{},
		drafts:    map[string]wire.CommandReply{},
		delivered: map[string]string{},
	}
}

// UpdateSnapshot stores the latest pushed telemetry.
func (s *Store) UpdateSnapshot(t wire.Telemetry) {
	s.mu.Lock()
	s.snapshot = t
	s.hasSnap = true
	s.mu.Unlock()
}

// Snapshot returns the latest telemetry and whether one was ever pushed.
func (s *Store) Snapshot() (wire.Telemetry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.hasSnap
}

// Activity returns the current activity / suggestion text.
func (s *Store) Activity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity
}

// SetActivity replaces the suggestion text shown on displays.
func (s *Store) SetActivity(text string) {
	s.mu.Lock()
	s.activity = text
	s.mu.Unlock()
}

// CreateRequest queues a sensor-data request and returns its id.
func (s *Store) CreateRequest(userMessage string) string {
	id := "req_" + uuid.NewString()
	s.mu.Lock()
	s.pending[id] = &pendingEntry{id: id, userMessage: userMessage, createdAt: time.Now()}
	s.order = append(s.order, id)
	s.mu.Unlock()
	return id
}

// OldestWaiting returns the oldest request still waiting for sensors.
func (s *Store) OldestWaiting() (wire.PendingRequestReply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if e := s.pending[id]; e != nil && !e.consumed {
			return wire.PendingRequestReply{RequestID: e.id, UserMessage: e.userMessage}, true
		}
	}
	return wire.PendingRequestReply{}, false
}

// Provide attaches telemetry to a pending request and marks it consumed.
func (s *Store) Provide(id string, t wire.Telemetry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.pending[id]
	if e == nil || e.consumed {
		return ErrUnknownRequest
	}
	e.consumed = true
	e.telemetry = &t
	return nil
}

// RequestState reports a request's consumed flag and telemetry, if any.
func (s *Store) RequestState(id string) (consumed bool, t *wire.Telemetry, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.pending[id]
	if e == nil {
		return false, nil, false
	}
	return e.consumed, e.telemetry, true
}

// QueueCommand merges fields into a device's draft bundle. Empty fields on
// the update leave the draft's current value in place.
func (s *Store) QueueCommand(device string, update wire.CommandReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.drafts[device]
	if update.OLEDText != "" {
		d.OLEDText = update.OLEDText
	}
	if update.RGBColor != "" {
		d.RGBColor = update.RGBColor
	}
	if update.BuzzerAction != "" {
		d.BuzzerAction = update.BuzzerAction
	}
	if update.Response != "" {
		d.Response = update.Response
	}
	s.drafts[device] = d
}

// TakeBundle delivers and clears the device's draft bundle, stamping it with
// a fresh id and the current activity text. ok is false when there is
// nothing to deliver beyond the activity the device already has.
func (s *Store) TakeBundle(device string) (wire.CommandReply, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, exists := s.drafts[device]
	if !exists {
		return wire.CommandReply{}, false
	}
	delete(s.drafts, device)
	d.RequestID = "cmd_" + uuid.NewString()
	if d.OLEDText == "" {
		d.OLEDText = s.activity
	}
	s.delivered[device] = d.RequestID
	return d, true
}

// AckBundle records a device's acknowledgement. It reports whether the id
// matches the most recently delivered bundle.
func (s *Store) AckBundle(device, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delivered[device] != id {
		return false
	}
	delete(s.delivered, device)
	return true
}
