package ui

import (
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/spektra/internal/spectral"
)

var barGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// peakField keeps a falling peak marker above every bar. A marker snaps up
// to any new maximum immediately and rides a critically damped spring back
// down toward the bar.
type peakField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newPeakField(fps int) *peakField {
	return &peakField{spring: harmonica.NewSpring(harmonica.FPS(fps), 3.0, 1.0)}
}

// step advances every marker one frame toward its bar and reports whether
// any marker moved.
func (f *peakField) step(bars []float64) bool {
	if len(f.pos) != len(bars) {
		f.pos = make([]float64, len(bars))
		f.vel = make([]float64, len(bars))
		copy(f.pos, bars)
	}

	moved := false
	for i, h := range bars {
		if h >= f.pos[i] {
			if h != f.pos[i] {
				moved = true
			}
			f.pos[i] = h
			f.vel[i] = 0
			continue
		}
		p, v := f.spring.Update(f.pos[i], f.vel[i], h)
		if p < h {
			p, v = h, 0
		}
		if p != f.pos[i] {
			moved = true
		}
		f.pos[i], f.vel[i] = p, v
	}
	return moved
}

// settled reports whether every marker has come to rest on the floor.
func (f *peakField) settled() bool {
	for _, p := range f.pos {
		if p > spectral.MinBarHeight+0.5 {
			return false
		}
	}
	return true
}

// renderBars draws the bar heights as columns of block glyphs, one terminal
// column per bar, with the peak markers overlaid. Heights arrive in the
// mapper's [MinBarHeight, MaxBarHeight] range and are scaled into the
// available rows; sub-row remainders pick a partial glyph.
func renderBars(bars, peaks []float64, width, height int) string {
	if height < 1 {
		height = 1
	}
	cols := len(bars)
	if width-2 < cols {
		cols = width - 2
	}
	if cols < 1 {
		return ""
	}

	span := spectral.MaxBarHeight - spectral.MinBarHeight
	scale := float64(height) / span

	rows := make([]string, height)
	for row := range height {
		var line strings.Builder
		line.WriteByte(' ')
		rowFromBottom := float64(height - 1 - row)

		for c := range cols {
			i := c * len(bars) / cols
			level := (bars[i] - spectral.MinBarHeight) * scale

			var peakRow float64 = -1
			if peaks != nil {
				peakRow = (peaks[i] - spectral.MinBarHeight) * scale
			}

			switch {
			case level > rowFromBottom+1:
				line.WriteString(barStyleFor(bars[i]).Render(string(barGlyphs[len(barGlyphs)-1])))
			case level > rowFromBottom:
				frac := level - rowFromBottom
				idx := int(frac * float64(len(barGlyphs)-1))
				line.WriteString(barStyleFor(bars[i]).Render(string(barGlyphs[idx])))
			case peakRow > rowFromBottom && peakRow <= rowFromBottom+1:
				line.WriteString(peakStyle.Render("▁"))
			default:
				line.WriteByte(' ')
			}
		}
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}

func barStyleFor(height float64) lipgloss.Style {
	frac := (height - spectral.MinBarHeight) / (spectral.MaxBarHeight - spectral.MinBarHeight)
	switch {
	case frac > 0.66:
		return barHighStyle
	case frac > 0.33:
		return barMidStyle
	default:
		return barLowStyle
	}
}
