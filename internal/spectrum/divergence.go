package spectrum

import (
	"fmt"
)

// DivergenceReport summarizes how badly the classical law overshoots the
// Planck curve on a shared grid.
type DivergenceReport struct {
	Temperature float64 // kelvin

	// Ratio of classical to Planck radiance at each grid sample.
	Ratios []float64

	// CatastropheNm is the longest wavelength at which the ratio meets
	// or exceeds the threshold; zero when Found is false.
	CatastropheNm float64
	Found         bool
	Threshold     float64

	// MaxRatio is the largest ratio on the grid (always at the shortest
	// wavelength, since the ratio is monotone in 1/λ).
	MaxRatio float64
}

// Diverge compares a Rayleigh-Jeans (or Wien) series against a Planck
// reference on the same grid. threshold is the classical/Planck ratio
// considered "catastrophic" (e.g. 10).
func Diverge(planck, classical *Series, threshold float64) (*DivergenceReport, error) {
	if len(planck.Values) == 0 || len(classical.Values) == 0 {
		return nil, ErrEmptySeries
	}
	if len(planck.WavelengthsNm) != len(classical.WavelengthsNm) {
		return nil, fmt.Errorf("%w: %d vs %d samples", ErrGridMismatch, len(planck.WavelengthsNm), len(classical.WavelengthsNm))
	}
	if threshold <= 1 {
		return nil, fmt.Errorf("divergence threshold must exceed 1, got %g", threshold)
	}

	// Ratios must compare raw radiances; a normalized or anchored series
	// would shift every ratio by its scale factor.
	ratios := make([]float64, len(planck.Values))
	maxRatio := 0.0
	for i := range ratios {
		p := planck.Values[i] / planck.Scale
		c := classical.Values[i] / classical.Scale
		if p == 0 {
			ratios[i] = 0
			continue
		}
		ratios[i] = c / p
		if ratios[i] > maxRatio {
			maxRatio = ratios[i]
		}
	}

	report := &DivergenceReport{
		Temperature: planck.Temperature,
		Ratios:      ratios,
		Threshold:   threshold,
		MaxRatio:    maxRatio,
	}

	// Walk down from the long-wavelength end: the first sample meeting
	// the threshold is where the catastrophe "starts".
	for i := len(ratios) - 1; i >= 0; i-- {
		if ratios[i] >= threshold {
			report.CatastropheNm = planck.WavelengthsNm[i]
			report.Found = true
			break
		}
	}

	return report, nil
}

// RatioAt returns the classical/Planck ratio at the sample nearest
// targetNm.
func (r *DivergenceReport) RatioAt(wavelengthsNm []float64, targetNm float64) (float64, error) {
	idx, err := NearestIndex(wavelengthsNm, targetNm)
	if err != nil {
		return 0, err
	}
	if idx >= len(r.Ratios) {
		return 0, fmt.Errorf("%w: ratio index %d out of range", ErrGridMismatch, idx)
	}
	return r.Ratios[idx], nil
}
