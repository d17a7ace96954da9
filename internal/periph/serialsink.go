// v1
// internal/periph/serialsink.go
package periph

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// SerialSink drives a microcontroller attached over a serial line using a
// newline-delimited command protocol:
//
//	<channel>:on|off          set a named channel
//	buzzer:pulse:<millis>     hold the buzzer for the given duration
//	oled:<l1>|<l2>|...        replace the display frame
//
// Write failures are logged and dropped; the peripheral resyncs on the next
// command, matching the node's tolerate-everything-after-boot policy.
type SerialSink struct {
	w     io.Writer
	lg    *slog.Logger
	sleep func(time.Duration)
}

// OpenSerialSink opens the named port and wraps it in a SerialSink.
func OpenSerialSink(port string, baud int, lg *slog.Logger) (*SerialSink, error) {
	p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud, ReadTimeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open serial sink %s: %w", port, err)
	}
	return NewSerialSink(p, lg), nil
}

// NewSerialSink wraps an already-open writer; tests pass a buffer.
func NewSerialSink(w io.Writer, lg *slog.Logger) *SerialSink {
	return &SerialSink{w: w, lg: lg, sleep: time.Sleep}
}

func (s *SerialSink) SetChannel(name string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	s.send(name + ":" + state)
}

func (s *SerialSink) Pulse(d time.Duration) {
	s.send(fmt.Sprintf("buzzer:pulse:%d", d.Milliseconds()))
	s.sleep(d)
}

func (s *SerialSink) Render(lines []string) {
	s.send("oled:" + strings.Join(lines, "|"))
}

func (s *SerialSink) send(cmd string) {
	if _, err := io.WriteString(s.w, cmd+"\n"); err != nil {
		s.lg.Warn("serial sink write failed", "command", cmd, "error", err)
	}
}
