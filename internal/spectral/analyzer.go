package spectral

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyzer is a single long-lived worker that consumes sample windows,
// runs a forward FFT, and publishes the resulting magnitude spectrum to a
// shared slot. The transform plan and all buffers are sized once for
// WindowSize and reused for every window.
type Analyzer struct {
	fft    *fourier.FFT
	coeffs []complex128
	mags   []float64
	in     <-chan []float64
	slot   *Slot
	done   chan struct{}
}

// NewAnalyzer plans the transform and prepares a worker reading from in.
// Call Run (usually in its own goroutine) to start consuming.
func NewAnalyzer(in <-chan []float64, slot *Slot) *Analyzer {
	return &Analyzer{
		fft:    fourier.NewFFT(WindowSize),
		coeffs: make([]complex128, WindowSize/2+1),
		mags:   make([]float64, WindowSize/2),
		in:     in,
		slot:   slot,
		done:   make(chan struct{}),
	}
}

// Run consumes windows until the input channel is closed. A window of the
// wrong length is skipped; a publish that loses the slot to the reader is
// dropped rather than retried. The next window starts over either way.
func (a *Analyzer) Run() {
	defer close(a.done)

	for win := range a.in {
		if len(win) != WindowSize {
			continue
		}
		a.fft.Coefficients(a.coeffs, win)
		for i := range a.mags {
			a.mags[i] = cmplx.Abs(a.coeffs[i])
		}
		a.slot.TryPublish(a.mags)
	}
}

// Done is closed once the worker has exited its consume loop.
func (a *Analyzer) Done() <-chan struct{} {
	return a.done
}
