package spectral

import "sync"

// Slot is the shared hand-off cell between the analyzer goroutine (sole
// writer) and the tick-driven engine (sole reader). Both sides copy across
// the lock boundary and give up immediately on contention, so neither the
// audio path nor the UI tick ever blocks on the other.
type Slot struct {
	mu    sync.Mutex
	data  []float64
	fresh bool
}

// TryPublish replaces the slot contents with a copy of mags. It reports
// false without publishing if the slot is currently locked by the reader.
func (s *Slot) TryPublish(mags []float64) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()

	s.data = append(s.data[:0], mags...)
	s.fresh = true
	return true
}

// TryTake returns a copy of the most recent spectrum and marks it consumed.
// It reports false if no unconsumed spectrum is available or the slot is
// currently locked by the writer.
func (s *Slot) TryTake() ([]float64, bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	defer s.mu.Unlock()

	if !s.fresh {
		return nil, false
	}
	out := make([]float64, len(s.data))
	copy(out, s.data)
	s.fresh = false
	return out, true
}
