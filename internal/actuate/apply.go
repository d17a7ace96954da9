// v1
// internal/actuate/apply.go
package actuate

import (
	"log/slog"
	"time"

	"smartenv/nodes/internal/periph"
)

// Applier turns validated commands into peripheral writes. Unknown wire
// values are a warn-and-no-op, never an error: a bad command must not take
// the loop down.
type Applier struct {
	channels periph.ChannelWriter
	buzzer   periph.Pulser
	lg       *slog.Logger

	// Sleep separates pulses; tests replace it to run patterns instantly.
	Sleep func(time.Duration)
}

func NewApplier(channels periph.ChannelWriter, buzzer periph.Pulser, lg *slog.Logger) *Applier {
	return &Applier{channels: channels, buzzer: buzzer, lg: lg, Sleep: time.Sleep}
}

// ApplyColor decodes and applies an RGB color. It reports whether the wire
// value was recognized.
func (a *Applier) ApplyColor(raw string) bool {
	c, ok := ParseColor(raw)
	if !ok {
		a.lg.Warn("unknown rgb color", "value", raw)
		return false
	}
	ch := palette[c]
	a.channels.SetChannel("red", ch.Red)
	a.channels.SetChannel("green", ch.Green)
	a.channels.SetChannel("blue", ch.Blue)
	a.lg.Info("rgb applied", "color", raw)
	return true
}

// ApplyBuzzer decodes and plays a buzzer pattern. Off cancels by driving the
// buzzer channel low; the loop is single-threaded so no pattern can be
// mid-flight when off arrives.
func (a *Applier) ApplyBuzzer(raw string) bool {
	act, ok := ParseBuzzerAction(raw)
	if !ok {
		a.lg.Warn("unknown buzzer action", "value", raw)
		return false
	}
	if act == BuzzerOff {
		a.channels.SetChannel("buzzer", false)
		a.lg.Info("buzzer off")
		return true
	}
	p := patterns[act]
	for i := 0; i < p.count; i++ {
		a.buzzer.Pulse(p.on)
		if p.gap > 0 {
			a.Sleep(p.gap)
		}
	}
	a.lg.Info("buzzer applied", "action", raw, "pulses", p.count)
	return true
}
