// Package spectral turns tapped audio samples into smoothed display bars:
// a background analyzer computes magnitude spectra from fixed-size sample
// windows, and a tick-driven engine evolves the bar heights over time.
package spectral

const (
	// WindowSize is the number of mono samples per analysis window.
	// Must be a power of 2.
	WindowSize = 2048

	// BarCount is the number of display bars produced by the mapper.
	BarCount = 75

	// MinBarHeight is the resting height of a silent bar.
	MinBarHeight = 4.0

	// MaxBarHeight is the display ceiling for a single bar.
	MaxBarHeight = 150.0

	// minDecibel and maxDecibel clamp the perceptual scale before
	// magnitudes are mapped onto bar heights.
	minDecibel = -90.0
	maxDecibel = -10.0

	// smoothing is the exponential smoothing factor applied on active
	// ticks; higher values react more slowly.
	smoothing = 0.2

	// decayStep is subtracted from every bar per tick while idle.
	decayStep = 8.0
)
