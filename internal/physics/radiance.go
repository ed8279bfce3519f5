package physics

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for argument validation.
var (
	ErrNonPositiveTemperature = errors.New("temperature must be positive")
	ErrNonPositiveWavelength  = errors.New("wavelength must be positive")
)

// maxExponent caps hc/(λ·kB·T) before exponentiation. math.Expm1 overflows
// float64 above ~709; at 700 the radiance is already far below any
// representable plot scale, so the cap only prevents Inf, it does not
// change visible results.
const maxExponent = 700.0

func validate(wavelengthM, tempK float64) error {
	if !(tempK > 0) {
		return fmt.Errorf("%w: got %g K", ErrNonPositiveTemperature, tempK)
	}
	if !(wavelengthM > 0) {
		return fmt.Errorf("%w: got %g m", ErrNonPositiveWavelength, wavelengthM)
	}
	return nil
}

// PlanckRadiance returns the Planck spectral radiance
// B(λ,T) = 2hc²/λ⁵ · 1/(exp(hc/λkT) - 1) in W·sr⁻¹·m⁻³.
func PlanckRadiance(wavelengthM, tempK float64) (float64, error) {
	if err := validate(wavelengthM, tempK); err != nil {
		return 0, err
	}

	x := Planck * SpeedOfLight / (wavelengthM * Boltzmann * tempK)
	if x > maxExponent {
		x = maxExponent
	}

	numerator := 2 * Planck * SpeedOfLight * SpeedOfLight
	lambda5 := math.Pow(wavelengthM, 5)
	return numerator / (lambda5 * math.Expm1(x)), nil
}

// RayleighJeansRadiance returns the classical spectral radiance
// B(λ,T) = 2ckT/λ⁴. This is the law that diverges as λ → 0: the
// ultraviolet catastrophe.
func RayleighJeansRadiance(wavelengthM, tempK float64) (float64, error) {
	if err := validate(wavelengthM, tempK); err != nil {
		return 0, err
	}

	lambda4 := math.Pow(wavelengthM, 4)
	return 2 * SpeedOfLight * Boltzmann * tempK / lambda4, nil
}

// WienRadiance returns Wien's approximation
// B(λ,T) = 2hc²/λ⁵ · exp(-hc/λkT), accurate at short wavelengths where
// exp(hc/λkT) >> 1.
func WienRadiance(wavelengthM, tempK float64) (float64, error) {
	if err := validate(wavelengthM, tempK); err != nil {
		return 0, err
	}

	x := Planck * SpeedOfLight / (wavelengthM * Boltzmann * tempK)
	if x > maxExponent {
		x = maxExponent
	}

	numerator := 2 * Planck * SpeedOfLight * SpeedOfLight
	lambda5 := math.Pow(wavelengthM, 5)
	return numerator / lambda5 * math.Exp(-x), nil
}
