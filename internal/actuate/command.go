// v1
// internal/actuate/command.go

// Package actuate maps decoded actuator commands onto peripheral effects.
// Wire strings are validated into closed enums at the decode boundary; past
// that point dispatch is table-driven and cannot see unknown values.
package actuate

import "time"

// Color is the closed RGB palette.
type Color int

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCyan
	ColorWhite
	ColorOff
)

// Channels is a fixed on/off combination of the three RGB legs.
type Channels struct {
	Red, Green, Blue bool
}

var palette = map[Color]Channels{
	ColorRed:    {Red: true},
	ColorGreen:  {Green: true},
	ColorBlue:   {Blue: true},
	ColorYellow: {Red: true, Green: true},
	ColorPurple: {Red: true, Blue: true},
	ColorCyan:   {Green: true, Blue: true},
	ColorWhite:  {Red: true, Green: true, Blue: true},
	ColorOff:    {},
}

var colorNames = map[string]Color{
	"red":    ColorRed,
	"green":  ColorGreen,
	"blue":   ColorBlue,
	"yellow": ColorYellow,
	"purple": ColorPurple,
	"cyan":   ColorCyan,
	"white":  ColorWhite,
	"off":    ColorOff,
}

// ParseColor validates a wire color string.
func ParseColor(s string) (Color, bool) {
	c, ok := colorNames[s]
	return c, ok
}

// BuzzerAction is the closed buzzer pattern set.
type BuzzerAction int

const (
	BuzzerBeep BuzzerAction = iota
	BuzzerDoubleBeep
	BuzzerAlarm
	BuzzerOff
)

// pattern is a fixed pulse sequence: count pulses of on duration each,
// separated and followed by gap.
type pattern struct {
	count int
	on    time.Duration
	gap   time.Duration
}

var patterns = map[BuzzerAction]pattern{
	BuzzerBeep:       {count: 1, on: 200 * time.Millisecond},
	BuzzerDoubleBeep: {count: 2, on: 150 * time.Millisecond, gap: 150 * time.Millisecond},
	BuzzerAlarm:      {count: 5, on: 500 * time.Millisecond, gap: 500 * time.Millisecond},
	BuzzerOff:        {},
}

var buzzerNames = map[string]BuzzerAction{
	"beep":        BuzzerBeep,
	"double_beep": BuzzerDoubleBeep,
	"alarm":       BuzzerAlarm,
	"off":         BuzzerOff,
	// the coordinator's stop-alarm surface sends "stop"
	"stop": BuzzerOff,
}

// ParseBuzzerAction validates a wire buzzer string.
func ParseBuzzerAction(s string) (BuzzerAction, bool) {
	a, ok := buzzerNames[s]
	return a, ok
}
