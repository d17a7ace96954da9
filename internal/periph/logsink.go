// v1
// internal/periph/logsink.go
package periph

import (
	"log/slog"
	"strings"
	"time"
)

// LogSink reports every peripheral effect through slog. It is the default
// sink on hosts with no hardware attached.
type LogSink struct {
	lg    *slog.Logger
	sleep func(time.Duration)
}

func NewLogSink(lg *slog.Logger) *LogSink {
	return &LogSink{lg: lg, sleep: time.Sleep}
}

func (s *LogSink) SetChannel(name string, on bool) {
	s.lg.Info("periph.channel", "name", name, "on", on)
}

// Pulse logs the on and off edges and holds for the duration so timing
// patterns behave the same as on hardware.
func (s *LogSink) Pulse(d time.Duration) {
	s.lg.Info("periph.pulse", "state", "on", "duration", d.String())
	s.sleep(d)
	s.lg.Info("periph.pulse", "state", "off")
}

func (s *LogSink) Render(lines []string) {
	s.lg.Info("periph.render", "lines", strings.Join(lines, "|"))
}
