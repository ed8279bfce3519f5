// Package spectrum samples the radiance laws over wavelength grids and
// implements the curve arithmetic the charts need: normalization,
// anchoring, peak finding, and the Rayleigh-Jeans divergence analysis.
//
// Grids and series wavelengths are in nanometres (the unit every chart
// axis and CLI flag uses); conversion to metres happens only at the
// physics boundary.
package spectrum

import (
	"errors"
	"fmt"
)

// Grid construction errors.
var (
	ErrGridTooSmall  = errors.New("grid needs at least two samples")
	ErrGridBounds    = errors.New("grid max must be greater than min")
	ErrGridNegative  = errors.New("grid wavelengths must be positive")
	ErrGridMismatch  = errors.New("series are on different wavelength grids")
	ErrEmptySeries   = errors.New("series has no samples")
)

// MetersPerNm converts the package's nanometre unit to SI metres.
const MetersPerNm = 1e-9

// Linspace returns count evenly spaced wavelengths from minNm to maxNm
// inclusive, mirroring the sampling of the reference chart
// (1-3000 nm, 1000 samples).
func Linspace(minNm, maxNm float64, count int) ([]float64, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrGridTooSmall, count)
	}
	if maxNm <= minNm {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrGridBounds, minNm, maxNm)
	}
	if minNm <= 0 {
		return nil, fmt.Errorf("%w: min %g nm", ErrGridNegative, minNm)
	}

	out := make([]float64, count)
	step := (maxNm - minNm) / float64(count-1)
	for i := range out {
		out[i] = minNm + float64(i)*step
	}
	// Pin the endpoint exactly; accumulated float error otherwise leaves
	// the last sample slightly off maxNm.
	out[count-1] = maxNm
	return out, nil
}

// NearestIndex returns the index of the sample closest to targetNm.
func NearestIndex(wavelengthsNm []float64, targetNm float64) (int, error) {
	if len(wavelengthsNm) == 0 {
		return 0, ErrEmptySeries
	}
	best := 0
	bestDist := dist(wavelengthsNm[0], targetNm)
	for i, wl := range wavelengthsNm[1:] {
		if d := dist(wl, targetNm); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return best, nil
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
