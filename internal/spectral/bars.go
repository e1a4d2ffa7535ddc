package spectral

import "math"

// MapBars reduces a magnitude spectrum into barCount display heights.
// The second half of the bars reuses the first half's bin selection, so the
// result is left-right symmetric. Magnitudes are normalized by the window
// size, converted to decibels, clamped to [minDecibel, maxDecibel], and
// remapped onto [MinBarHeight, MaxBarHeight]. A pure function: identical
// input yields identical output.
func MapBars(spectrum []float64, barCount int) []float64 {
	bars := make([]float64, barCount)
	totalBins := len(spectrum)
	if totalBins == 0 {
		for i := range bars {
			bars[i] = MinBarHeight
		}
		return bars
	}

	halfBars := (barCount + 1) / 2
	stride := totalBins / halfBars

	for i := range bars {
		idx := (i % halfBars) * stride
		if idx > totalBins-1 {
			idx = totalBins - 1
		}

		raw := spectrum[idx] / WindowSize
		db := minDecibel
		if raw > 0 {
			db = 20 * math.Log10(raw)
			if db < minDecibel {
				db = minDecibel
			} else if db > maxDecibel {
				db = maxDecibel
			}
		}

		h := mapRange(db, minDecibel, maxDecibel, MinBarHeight, MaxBarHeight)
		if h < MinBarHeight {
			h = MinBarHeight
		}
		bars[i] = h
	}
	return bars
}

// mapRange linearly remaps value from [fromMin, fromMax] to [toMin, toMax].
func mapRange(value, fromMin, fromMax, toMin, toMax float64) float64 {
	scaled := (value - fromMin) / (fromMax - fromMin)
	return toMin + scaled*(toMax-toMin)
}
