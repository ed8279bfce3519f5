package physics

import (
	"fmt"
	"math"
)

// PeakWavelength returns the wavelength (m) at which Planck radiance peaks
// for the given temperature, via Wien's displacement law.
func PeakWavelength(tempK float64) (float64, error) {
	if !(tempK > 0) {
		return 0, fmt.Errorf("%w: got %g K", ErrNonPositiveTemperature, tempK)
	}
	return WienDisplacement / tempK, nil
}

// RadiantExitance returns the total power radiated per unit surface area
// (W/m²) via the Stefan-Boltzmann law, M = σT⁴.
func RadiantExitance(tempK float64) (float64, error) {
	if !(tempK > 0) {
		return 0, fmt.Errorf("%w: got %g K", ErrNonPositiveTemperature, tempK)
	}
	return StefanBoltzmann * math.Pow(tempK, 4), nil
}

// TotalRadiance returns the Stefan-Boltzmann exitance divided by π, the
// radiance of a Lambertian blackbody surface (W·sr⁻¹·m⁻²).
func TotalRadiance(tempK float64) (float64, error) {
	m, err := RadiantExitance(tempK)
	if err != nil {
		return 0, err
	}
	return m / math.Pi, nil
}

// PhotonEnergy returns the energy of a photon at the given wavelength in
// joules, E = hc/λ.
func PhotonEnergy(wavelengthM float64) (float64, error) {
	if !(wavelengthM > 0) {
		return 0, fmt.Errorf("%w: got %g m", ErrNonPositiveWavelength, wavelengthM)
	}
	return Planck * SpeedOfLight / wavelengthM, nil
}

// PhotonEnergyEV is PhotonEnergy expressed in electronvolts.
func PhotonEnergyEV(wavelengthM float64) (float64, error) {
	j, err := PhotonEnergy(wavelengthM)
	if err != nil {
		return 0, err
	}
	return j / ElementaryCharge, nil
}
