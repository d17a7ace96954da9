// v1
// internal/sensor/reading.go

// Package sensor provides the reading model and the sources that produce it.
package sensor

import "math"

// Reading is one environment snapshot. Touch is nil on nodes without a touch
// sensor so the field stays off the wire.
type Reading struct {
	Temperature float64
	Humidity    float64
	Light       int
	Touch       *bool
}

// Normalized replaces NaN temperature/humidity with zero. DHT sensors report
// NaN on a failed read; downstream consumers expect numbers.
func (r Reading) Normalized() Reading {
	if math.IsNaN(r.Temperature) {
		r.Temperature = 0
	}
	if math.IsNaN(r.Humidity) {
		r.Humidity = 0
	}
	return r
}

// Source produces readings. Read is synchronous and always returns a value;
// sources degrade to zeroed or stale readings on fault rather than failing.
type Source interface {
	Read() Reading
}
