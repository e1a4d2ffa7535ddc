// Package player decodes audio files to PCM, plays them through the output
// device, and taps the stream for spectral analysis on the way out.
package player

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/spektra/internal/spectral"
)

// tapQueueDepth bounds the window hand-off channel. The analyzer only ever
// needs the most recent window, so dropping under pressure is fine.
const tapQueueDepth = 8

// countingReader tracks bytes pulled by the output device, which is the
// playback position.
type countingReader struct {
	reader io.ReadSeeker
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

// Player owns one playback pipeline:
//
//	[Decode] -> [Tap] -> [Counter] -> [Oto]
//	              └─> windows ─> [Analyzer] ─> spectrum slot
//
// It is created paused at offset zero. Stop is modeled by closing the
// player and building a fresh one, which also restarts the analyzer.
type Player struct {
	file      *os.File
	decoder   audioDecoder
	tap       *Tap
	counter   *countingReader
	analyzer  *spectral.Analyzer
	otoCtx    *oto.Context
	otoPlayer *oto.Player

	duration    time.Duration
	bytesPerSec int

	mu       sync.Mutex
	volume   float64
	paused   bool
	closed   bool
	done     chan struct{}
	doneOnce sync.Once
}

// finish resolves Done exactly once, whether the stream drained or the
// player was torn down.
func (p *Player) finish() {
	p.doneOnce.Do(func() { close(p.done) })
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

// initOto acquires the output device once per process, using the first
// stream's parameters. The process plays a single file, so later loads of
// the same file always match.
func initOto(sampleRate, channelCount int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	if otoInitErr != nil {
		return nil, fmt.Errorf("acquiring output device: %w", otoInitErr)
	}
	return globalOtoCtx, nil
}

// New builds the full pipeline for path, paused at the start. Published
// spectra land in slot. On any error no pipeline state is left behind.
func New(path string, slot *spectral.Slot) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec, err := openDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	ctx, err := initOto(dec.SampleRate(), dec.ChannelCount())
	if err != nil {
		f.Close()
		return nil, err
	}

	tap := NewTap(dec, spectral.WindowSize, tapQueueDepth)
	cr := &countingReader{reader: tap}

	analyzer := spectral.NewAnalyzer(tap.Windows(), slot)
	go analyzer.Run()

	bytesPerSec := dec.SampleRate() * dec.ChannelCount() * 2
	dur := time.Duration(float64(dec.Length()) / float64(bytesPerSec) * float64(time.Second))

	p := &Player{
		file:        f,
		decoder:     dec,
		tap:         tap,
		counter:     cr,
		analyzer:    analyzer,
		otoCtx:      ctx,
		duration:    dur,
		bytesPerSec: bytesPerSec,
		volume:      0.8,
		paused:      true,
		done:        make(chan struct{}),
	}

	p.otoPlayer = ctx.NewPlayer(cr)
	p.otoPlayer.SetVolume(p.volume)

	go p.monitor()

	return p, nil
}

func (p *Player) monitor() {
	total := p.decoder.Length()
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		pos := p.counter.Pos()
		paused := p.paused
		p.mu.Unlock()

		if !paused && total > 0 && pos >= total {
			p.finish()
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Done returns a channel that closes when the stream has fully drained.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// Play starts or resumes playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.otoPlayer.Play()
	p.paused = false
}

// Pause suspends playback without tearing anything down.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.otoPlayer.Pause()
	p.paused = true
}

// Paused reports whether playback is currently suspended.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	pos := p.counter.Pos()
	secs := float64(pos) / float64(p.bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the total duration of the track.
func (p *Player) Duration() time.Duration {
	return p.duration
}

// Seek moves playback by delta from the current position. The oto player
// is recreated to flush its buffered audio; the tap discards its partial
// window on the way through.
func (p *Player) Seek(delta time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	newPos := p.counter.Pos() + int64(delta.Seconds()*float64(p.bytesPerSec))
	if newPos < 0 {
		newPos = 0
	}
	if total := p.decoder.Length(); newPos > total {
		newPos = total
	}
	frameBytes := int64(p.decoder.ChannelCount()) * 2
	newPos -= newPos % frameBytes

	if _, err := p.tap.Seek(newPos, io.SeekStart); err != nil {
		return
	}
	p.counter.SetPos(newPos)

	wasPaused := p.paused
	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	if !wasPaused {
		p.otoPlayer.Play()
	}
}

// Volume returns the current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the volume, clamped to 0.0 - 1.0.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	if !p.closed {
		p.otoPlayer.SetVolume(v)
	}
}

// AdjustVolume adjusts the volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	v := p.volume + delta
	p.mu.Unlock()
	p.SetVolume(v)
}

// Close tears the pipeline down: playback stops, the tap's channel closes
// (terminating the analyzer), and the file is released.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.otoPlayer.Pause()
	p.tap.Close()
	p.file.Close()
	p.finish()
}
