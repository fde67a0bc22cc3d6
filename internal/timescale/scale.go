package timescale

import "time"

// Scale maps instants in a domain linearly onto a pixel range. The range
// defaults to [0, 1] until SetRange is called.
type Scale struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewScale returns a scale over [start, stop].
func NewScale(start, stop time.Time) *Scale {
	return &Scale{d0: start, d1: stop, r0: 0, r1: 1}
}

// Domain returns the instants the scale spans.
func (s *Scale) Domain() (time.Time, time.Time) { return s.d0, s.d1 }

// Range returns the output pixel range.
func (s *Scale) Range() (float64, float64) { return s.r0, s.r1 }

// SetRange sets the output pixel range.
func (s *Scale) SetRange(r0, r1 float64) { s.r0, s.r1 = r0, r1 }

// Map converts t to a pixel position. A zero-length domain maps every
// instant to the middle of the range.
func (s *Scale) Map(t time.Time) float64 {
	span := s.d1.Sub(s.d0)
	if span == 0 {
		return s.r0 + (s.r1-s.r0)/2
	}
	frac := float64(t.Sub(s.d0)) / float64(span)
	return s.r0 + frac*(s.r1-s.r0)
}
