// v1
// internal/sensor/sim.go
package sensor

import "math/rand"

// SimSource generates plausible synthetic readings for development hosts:
// 18–28°C, 30–70% humidity, ambient light 0–1023, occasional touch events.
type SimSource struct {
	rnd   *rand.Rand
	touch bool
}

// NewSimSource builds a simulated source. touch controls whether the node
// reports a touch sensor at all.
func NewSimSource(seed int64, touch bool) *SimSource {
	return &SimSource{rnd: rand.New(rand.NewSource(seed)), touch: touch}
}

func (s *SimSource) Read() Reading {
	r := Reading{
		Temperature: 18 + s.rnd.Float64()*10,
		Humidity:    30 + s.rnd.Float64()*40,
		Light:       s.rnd.Intn(1024),
	}
	if s.touch {
		touched := s.rnd.Intn(10) == 0
		r.Touch = &touched
	}
	return r
}
