// v1
// internal/coordsim/keywords.go
package coordsim

import (
	"strings"

	"smartenv/nodes/internal/wire"
)

// rgbKeywords is checked in order; the first color word found wins, with
// "off" last so "turn off the red light" still picks red.
var rgbKeywords = []string{"red", "blue", "green", "yellow", "purple", "cyan", "white", "off"}

// activityKeywords maps free-text hints to the label shown on the OLED.
var activityKeywords = []struct {
	label string
	words []string
}{
	{"STUDY", []string{"study", "learning", "homework"}},
	{"SLEEP", []string{"sleep", "rest", "nap"}},
	{"WORK", []string{"work", "focus", "project"}},
	{"EXERCISE", []string{"exercise", "workout", "yoga"}},
	{"RELAX", []string{"relax", "chill", "movie", "tv"}},
	{"CODING", []string{"code", "programming", "develop"}},
}

// ClassifyMessage scans a free-text message for hardware intents and returns
// the command fields it implies. Empty fields mean no intent was found.
func ClassifyMessage(message string) wire.CommandReply {
	lower := strings.ToLower(message)
	var cmd wire.CommandReply

	if containsAny(lower, "alarm", "buzzer", "beep") {
		if strings.Contains(lower, "beep") {
			cmd.BuzzerAction = "beep"
		} else {
			cmd.BuzzerAction = "alarm"
		}
		if containsAny(lower, "stop", "off") && !strings.Contains(lower, "beep") {
			cmd.BuzzerAction = "off"
		}
	}

	for _, color := range rgbKeywords {
		if strings.Contains(lower, color) {
			cmd.RGBColor = color
			break
		}
	}

	for _, a := range activityKeywords {
		if containsAny(lower, a.words...) {
			cmd.OLEDText = a.label
			break
		}
	}

	return cmd
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
