// v1
// internal/periph/memory.go
package periph

import (
	"sync"
	"time"
)

// Transition records one observed peripheral state change.
type Transition struct {
	Channel string
	On      bool
}

// MemorySink records every effect. It backs package tests and the admin
// API's current-frame endpoint.
type MemorySink struct {
	mu          sync.Mutex
	channels    map[string]bool
	transitions []Transition
	frame       []string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{channels: map[string]bool{}}
}

func (m *MemorySink) SetChannel(name string, on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[name] = on
	m.transitions = append(m.transitions, Transition{Channel: name, On: on})
}

// Pulse records the on and off edges without sleeping.
func (m *MemorySink) Pulse(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions,
		Transition{Channel: "buzzer", On: true},
		Transition{Channel: "buzzer", On: false})
}

func (m *MemorySink) Render(lines []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame = append([]string(nil), lines...)
}

// Channel returns the last written state of a channel.
func (m *MemorySink) Channel(name string) (on, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	on, known = m.channels[name]
	return on, known
}

// Transitions returns a copy of all recorded state changes in order.
func (m *MemorySink) Transitions() []Transition {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Transition(nil), m.transitions...)
}

// Frame returns the most recently rendered lines.
func (m *MemorySink) Frame() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.frame...)
}
