// Package physics implements the radiometric formulas behind uvcat:
// Planck's law, the classical Rayleigh-Jeans law, the Wien approximation,
// and the derived blackbody quantities (Wien displacement peak,
// Stefan-Boltzmann exitance, photon energy).
//
// All spectral radiance values are per unit wavelength,
// in W·sr⁻¹·m⁻³, with wavelengths in metres and temperatures in kelvin.
package physics

// Exact CODATA 2018 values. h, c and kB are exact by definition since the
// 2019 SI redefinition; the Wien and Stefan-Boltzmann constants follow
// from them.
const (
	// Planck constant (J·s)
	Planck = 6.62607015e-34

	// Speed of light in vacuum (m/s)
	SpeedOfLight = 299792458.0

	// Boltzmann constant (J/K)
	Boltzmann = 1.380649e-23

	// Elementary charge (C), used for eV conversion
	ElementaryCharge = 1.602176634e-19

	// Wien displacement constant (m·K): peak wavelength = Wien / T
	WienDisplacement = 2.897771955e-3

	// Stefan-Boltzmann constant (W·m⁻²·K⁻⁴)
	StefanBoltzmann = 5.670374419e-8
)

// Visible band boundaries used across the tool (matches the shaded
// region of the reference chart).
const (
	VisibleMinNm = 380.0
	VisibleMaxNm = 750.0
)
