// v1
// internal/periph/periph.go

// Package periph abstracts the node peripherals. Real pin drivers live
// behind these interfaces; the implementations here target development hosts
// (structured log output, a serial-attached microcontroller, and an
// in-memory sink for tests and the admin API).
package periph

import "time"

// ChannelWriter drives named on/off channels: the RGB legs "red", "green",
// "blue" and the "buzzer" line.
type ChannelWriter interface {
	SetChannel(name string, on bool)
}

// Pulser holds the buzzer on for the given duration and releases it.
type Pulser interface {
	Pulse(d time.Duration)
}

// Renderer pushes a full frame of display lines.
type Renderer interface {
	Render(lines []string)
}

// Sink is the full peripheral surface a node drives.
type Sink interface {
	ChannelWriter
	Pulser
	Renderer
}
