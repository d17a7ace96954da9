// v1
// internal/sensor/serial.go
package sensor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// serialPayload is the line-JSON shape a serial-attached microcontroller
// emits, one object per line.
type serialPayload struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Light       int     `json:"light"`
	Touch       *bool   `json:"touch"`
}

// SerialSource reads newline-delimited JSON readings from a serial port.
// A failed or garbled read returns the last good reading so the loop always
// has a value to work with.
type SerialSource struct {
	r    *bufio.Reader
	lg   *slog.Logger
	last Reading
}

// OpenSerialSource opens the named port. The read timeout bounds each Read
// so a silent microcontroller cannot stall the loop longer than one tick.
func OpenSerialSource(port string, baud int, lg *slog.Logger) (*SerialSource, error) {
	p, err := serial.OpenPort(&serial.Config{Name: port, Baud: baud, ReadTimeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open serial source %s: %w", port, err)
	}
	return NewSerialSource(p, lg), nil
}

// NewSerialSource wraps an already-open reader; tests pass a strings.Reader.
func NewSerialSource(r io.Reader, lg *slog.Logger) *SerialSource {
	return &SerialSource{r: bufio.NewReader(r), lg: lg}
}

func (s *SerialSource) Read() Reading {
	line, err := s.r.ReadString('\n')
	if err != nil {
		s.lg.Warn("serial read failed, keeping last reading", "error", err)
		return s.last
	}
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "{") {
		// microcontrollers also print boot noise and debug lines
		return s.last
	}
	var p serialPayload
	if err := json.Unmarshal([]byte(line), &p); err != nil {
		s.lg.Warn("serial line is not valid JSON", "line", line, "error", err)
		return s.last
	}
	s.last = Reading{Temperature: p.Temperature, Humidity: p.Humidity, Light: p.Light, Touch: p.Touch}.Normalized()
	return s.last
}
