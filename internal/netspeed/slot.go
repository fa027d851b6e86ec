package netspeed

// Slot tracks the previous counter reading of one interface/direction pair,
// or of one aggregate direction, across ticks.
//
// A Slot starts uninitialized. The first Observe stores a baseline and reports
// nothing; every later Observe reports the delta against the stored reading.
type Slot struct {
	baseline uint64
	warm     bool
}

// Observe stores counter as the new baseline and returns the delta against the
// previous one. ok is false when there was no previous baseline.
//
// A counter lower than the baseline (wrap or interface reset) is not clamped
// and yields a wrapped delta.
func (s *Slot) Observe(counter uint64) (delta uint64, ok bool) {
	prev, warm := s.baseline, s.warm
	s.baseline = counter
	s.warm = true
	if !warm {
		return 0, false
	}
	return counter - prev, true
}

// Warm reports whether the slot holds a baseline.
func (s *Slot) Warm() bool {
	return s.warm
}

// Baseline returns the stored reading and whether it is valid.
func (s *Slot) Baseline() (uint64, bool) {
	return s.baseline, s.warm
}

// Reset drops the baseline so the next Observe is treated as a first sample.
func (s *Slot) Reset() {
	s.baseline = 0
	s.warm = false
}
