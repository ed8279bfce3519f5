package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nm    = 1e-9
	sunT  = 5000.0 // reference temperature used throughout the docs
	tolPc = 0.02   // 2% tolerance for reference magnitudes
)

func TestPlanckRadianceReferenceValue(t *testing.T) {
	// B(500nm, 5000K) ≈ 1.21e13 W·sr⁻¹·m⁻³
	b, err := PlanckRadiance(500*nm, sunT)
	require.NoError(t, err)
	require.InEpsilon(t, 1.21e13, b, tolPc)
}

func TestPlanckAlwaysBelowRayleighJeans(t *testing.T) {
	// expm1(x) > x for all x > 0, so the classical law overshoots at
	// every wavelength, not just in the UV.
	for _, wl := range []float64{10 * nm, 100 * nm, 500 * nm, 1000 * nm, 1e-3} {
		planck, err := PlanckRadiance(wl, sunT)
		require.NoError(t, err)
		rj, err := RayleighJeansRadiance(wl, sunT)
		require.NoError(t, err)
		assert.Less(t, planck, rj, "wavelength %g m", wl)
	}
}

func TestRayleighJeansAgreesAtLongWavelengths(t *testing.T) {
	// In the microwave regime the classical law is a good approximation.
	planck, err := PlanckRadiance(1e-3, sunT)
	require.NoError(t, err)
	rj, err := RayleighJeansRadiance(1e-3, sunT)
	require.NoError(t, err)
	require.InEpsilon(t, 1.0, rj/planck, 0.01)
}

func TestWienConvergesAtShortWavelengths(t *testing.T) {
	planck, err := PlanckRadiance(100*nm, sunT)
	require.NoError(t, err)
	wien, err := WienRadiance(100*nm, sunT)
	require.NoError(t, err)
	require.InEpsilon(t, 1.0, wien/planck, 1e-9)
}

func TestPlanckNoOverflowAtExtremeArguments(t *testing.T) {
	// Without the exponent cap this produces Inf/Inf = NaN.
	b, err := PlanckRadiance(1e-12, 300)
	require.NoError(t, err)
	assert.False(t, math.IsInf(b, 0))
	assert.False(t, math.IsNaN(b))
	assert.GreaterOrEqual(t, b, 0.0)
}

func TestRadianceValidation(t *testing.T) {
	_, err := PlanckRadiance(500*nm, 0)
	require.ErrorIs(t, err, ErrNonPositiveTemperature)

	_, err = PlanckRadiance(-1, sunT)
	require.ErrorIs(t, err, ErrNonPositiveWavelength)

	_, err = RayleighJeansRadiance(0, sunT)
	require.ErrorIs(t, err, ErrNonPositiveWavelength)

	_, err = WienRadiance(500*nm, -10)
	require.ErrorIs(t, err, ErrNonPositiveTemperature)

	_, err = PlanckRadiance(500*nm, math.NaN())
	require.ErrorIs(t, err, ErrNonPositiveTemperature)
}

func TestPeakWavelength(t *testing.T) {
	peak, err := PeakWavelength(sunT)
	require.NoError(t, err)
	require.InEpsilon(t, 579.55*nm, peak, 1e-4)

	_, err = PeakWavelength(0)
	require.ErrorIs(t, err, ErrNonPositiveTemperature)
}

func TestRadiantExitance(t *testing.T) {
	m, err := RadiantExitance(sunT)
	require.NoError(t, err)
	require.InEpsilon(t, 3.544e7, m, 1e-3)

	l, err := TotalRadiance(sunT)
	require.NoError(t, err)
	require.InEpsilon(t, m/math.Pi, l, 1e-12)
}

func TestPhotonEnergy(t *testing.T) {
	ev, err := PhotonEnergyEV(500 * nm)
	require.NoError(t, err)
	require.InEpsilon(t, 2.48, ev, 0.01)

	_, err = PhotonEnergy(0)
	require.ErrorIs(t, err, ErrNonPositiveWavelength)
}
