// v0
// internal/sensor/sensor_test.go
package sensor

import (
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestNormalizedReplacesNaN(t *testing.T) {
	r := Reading{Temperature: math.NaN(), Humidity: math.NaN(), Light: 400}
	n := r.Normalized()
	if n.Temperature != 0 || n.Humidity != 0 {
		t.Fatalf("NaN not normalized: %+v", n)
	}
	if n.Light != 400 {
		t.Fatalf("light must pass through, got %d", n.Light)
	}
}

func TestNormalizedKeepsRealValues(t *testing.T) {
	r := Reading{Temperature: 21.5, Humidity: 48.0}
	if n := r.Normalized(); n != r {
		t.Fatalf("real values changed: %+v", n)
	}
}

func TestSimSourceRanges(t *testing.T) {
	src := NewSimSource(1, true)
	for i := 0; i < 100; i++ {
		r := src.Read()
		if r.Temperature < 18 || r.Temperature > 28 {
			t.Fatalf("temperature out of range: %f", r.Temperature)
		}
		if r.Humidity < 30 || r.Humidity > 70 {
			t.Fatalf("humidity out of range: %f", r.Humidity)
		}
		if r.Light < 0 || r.Light > 1023 {
			t.Fatalf("light out of range: %d", r.Light)
		}
		if r.Touch == nil {
			t.Fatal("touch-enabled source must report a touch value")
		}
	}
}

func TestSimSourceWithoutTouch(t *testing.T) {
	if r := NewSimSource(1, false).Read(); r.Touch != nil {
		t.Fatal("touchless source must not report touch")
	}
}

func TestSerialSourceParsesLines(t *testing.T) {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	in := strings.NewReader("boot v2\n{\"temperature\":22.5,\"humidity\":51,\"light\":700}\n")
	src := NewSerialSource(in, lg)

	if r := src.Read(); r != (Reading{}) {
		t.Fatalf("non-JSON line should keep zero reading, got %+v", r)
	}
	r := src.Read()
	if r.Temperature != 22.5 || r.Humidity != 51 || r.Light != 700 {
		t.Fatalf("parsed reading wrong: %+v", r)
	}
	// EOF: the last good reading sticks
	if r2 := src.Read(); r2 != r {
		t.Fatalf("faulted read should return last reading, got %+v", r2)
	}
}

func TestSerialSourceGarbageKeepsLast(t *testing.T) {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	in := strings.NewReader("{\"temperature\":20,\"humidity\":40,\"light\":10}\n{not json\n")
	src := NewSerialSource(in, lg)
	first := src.Read()
	if got := src.Read(); got != first {
		t.Fatalf("garbled line should keep last reading, got %+v", got)
	}
}
