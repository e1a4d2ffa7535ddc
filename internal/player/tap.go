package player

import (
	"encoding/binary"
	"sync"
)

// Tap wraps a decoder and forwards its s16le stream unchanged while mixing
// the passed-through frames to mono floats and collecting them into
// fixed-size analysis windows. Each full window is handed off with a
// non-blocking send; if the analyzer is gone or behind, the window is
// dropped. Playback never waits on the tap.
type Tap struct {
	src       audioDecoder
	size      int
	channels  int
	frameSize int

	mu     sync.Mutex
	win    []float64
	carry  []byte
	out    chan []float64
	closed bool
}

// NewTap wraps src, emitting windows of windowSize mono samples on a
// channel of the given depth.
func NewTap(src audioDecoder, windowSize, queueDepth int) *Tap {
	channels := src.ChannelCount()
	if channels < 1 {
		channels = 1
	}
	return &Tap{
		src:       src,
		size:      windowSize,
		channels:  channels,
		frameSize: channels * 2,
		win:       make([]float64, 0, windowSize),
		out:       make(chan []float64, queueDepth),
	}
}

// Windows returns the channel carrying completed analysis windows. It is
// closed by Close.
func (t *Tap) Windows() <-chan []float64 {
	return t.out
}

// Read pulls from the wrapped decoder and returns its data untouched. The
// bytes read are also captured for analysis.
func (t *Tap) Read(p []byte) (int, error) {
	n, err := t.src.Read(p)
	if n > 0 {
		t.capture(p[:n])
	}
	return n, err
}

// capture folds the raw s16le bytes into the window accumulator. Partial
// frames at the end of a read are carried over to the next one.
func (t *Tap) capture(b []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	data := b
	if len(t.carry) > 0 {
		data = append(t.carry, b...)
	}
	whole := len(data) / t.frameSize * t.frameSize

	for off := 0; off < whole; off += t.frameSize {
		var sum float64
		for c := range t.channels {
			s := int16(binary.LittleEndian.Uint16(data[off+2*c:]))
			sum += float64(s) / 32768.0
		}
		t.win = append(t.win, sum/float64(t.channels))

		if len(t.win) == t.size {
			select {
			case t.out <- t.win:
				t.win = make([]float64, 0, t.size)
			default:
				t.win = t.win[:0]
			}
		}
	}

	t.carry = append(t.carry[:0], data[whole:]...)
}

// Seek forwards to the wrapped decoder and discards the partially
// accumulated window, which no longer describes contiguous audio.
func (t *Tap) Seek(offset int64, whence int) (int64, error) {
	pos, err := t.src.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	t.mu.Lock()
	t.win = t.win[:0]
	t.carry = t.carry[:0]
	t.mu.Unlock()
	return pos, nil
}

// Close stops capturing and closes the window channel, which terminates
// the analyzer. Reads keep passing audio through afterwards.
func (t *Tap) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	close(t.out)
}

func (t *Tap) Length() int64     { return t.src.Length() }
func (t *Tap) SampleRate() int   { return t.src.SampleRate() }
func (t *Tap) ChannelCount() int { return t.src.ChannelCount() }
