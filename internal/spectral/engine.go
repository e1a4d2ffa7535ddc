package spectral

// Phase mirrors the playback engine's state as seen by the visualizer.
type Phase int

const (
	Stopped Phase = iota
	Playing
	Paused
)

// State describes what the engine will do on the next tick.
type State int

const (
	// Active: playback is running; fresh spectra are smoothed in.
	Active State = iota
	// Decaying: playback halted but bars are still above the floor.
	Decaying
	// Settled: every bar is at the floor; ticks are wasted work.
	Settled
)

// Engine owns the displayed bar heights and evolves them once per external
// tick. It is not safe for concurrent use; drive it from a single loop.
type Engine struct {
	slot  *Slot
	phase Phase
	bars  []float64
}

// NewEngine creates an engine with every bar at the floor, reading fresh
// spectra from slot.
func NewEngine(slot *Slot) *Engine {
	bars := make([]float64, BarCount)
	for i := range bars {
		bars[i] = MinBarHeight
	}
	return &Engine{slot: slot, phase: Stopped, bars: bars}
}

// SetPhase records the playback engine's current phase.
func (e *Engine) SetPhase(p Phase) {
	e.phase = p
}

// Phase returns the last recorded playback phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// State reports the engine's mode for the next tick. The caller should stop
// ticking while Settled and resume when playback does.
func (e *Engine) State() State {
	if e.phase == Playing {
		return Active
	}
	for _, h := range e.bars {
		if h > MinBarHeight {
			return Decaying
		}
	}
	return Settled
}

// Tick advances the bars one step and reports whether any height changed,
// in which case a redraw is owed.
//
// While playing, the latest unconsumed spectrum is pulled from the slot,
// mapped to target bars, and blended in by exponential smoothing; with no
// fresh spectrum this tick the bars are held as-is, not decayed. While not
// playing, every bar falls by a fixed step until it reaches the floor.
func (e *Engine) Tick() bool {
	if e.phase == Playing {
		mags, ok := e.slot.TryTake()
		if !ok {
			return false
		}
		next := MapBars(mags, len(e.bars))
		for i := range e.bars {
			e.bars[i] = e.bars[i]*smoothing + next[i]*(1-smoothing)
		}
		return true
	}

	changed := false
	for i, h := range e.bars {
		if h <= MinBarHeight {
			continue
		}
		h -= decayStep
		if h < MinBarHeight {
			h = MinBarHeight
		}
		e.bars[i] = h
		changed = true
	}
	return changed
}

// Bars returns the engine's current bar heights. The slice is owned by the
// engine; callers must treat it as read-only.
func (e *Engine) Bars() []float64 {
	return e.bars
}
