package ui

import (
	"strings"
	"testing"

	"github.com/olivier-w/spektra/internal/spectral"
)

func floorBars(n int) []float64 {
	bars := make([]float64, n)
	for i := range bars {
		bars[i] = spectral.MinBarHeight
	}
	return bars
}

func TestRenderBarsRowCount(t *testing.T) {
	out := renderBars(floorBars(10), nil, 40, 6)
	if rows := len(strings.Split(out, "\n")); rows != 6 {
		t.Fatalf("rendered %d rows, want 6", rows)
	}
}

func TestRenderBarsFloorIsBlank(t *testing.T) {
	out := renderBars(floorBars(10), nil, 40, 6)
	if strings.ContainsRune(out, '█') || strings.ContainsRune(out, '▁') {
		t.Fatalf("floor bars must render blank, got %q", out)
	}
}

func TestRenderBarsFullBarFillsColumn(t *testing.T) {
	bars := floorBars(3)
	bars[1] = spectral.MaxBarHeight

	out := renderBars(bars, nil, 40, 5)
	for i, row := range strings.Split(out, "\n") {
		if !strings.ContainsRune(row, '█') {
			t.Fatalf("row %d missing full block for ceiling bar: %q", i, row)
		}
	}
}

func TestRenderBarsNarrowWindow(t *testing.T) {
	if out := renderBars(floorBars(75), nil, 2, 5); out != "" {
		t.Fatalf("expected empty render without room for bars, got %q", out)
	}
	// One column of room still renders.
	if out := renderBars(floorBars(75), nil, 3, 5); out == "" {
		t.Fatal("expected render with a single column of room")
	}
}

func TestPeakFieldRidesAboveBars(t *testing.T) {
	f := newPeakField(60)

	high := floorBars(5)
	high[2] = 100
	f.step(high)
	if f.pos[2] != 100 {
		t.Fatalf("peak must snap up to a new maximum, got %v", f.pos[2])
	}

	low := floorBars(5)
	for n := 0; n < 300; n++ {
		f.step(low)
		for i := range low {
			if f.pos[i] < low[i] {
				t.Fatalf("peak %d fell below its bar: %v < %v", i, f.pos[i], low[i])
			}
		}
	}
	if !f.settled() {
		t.Fatalf("peaks did not settle onto the floor: %v", f.pos)
	}
}
