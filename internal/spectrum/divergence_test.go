package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func divergeFixture(t *testing.T, threshold float64) (*Series, *DivergenceReport) {
	t.Helper()
	grid := defaultGrid(t)
	planck, err := Compute(LawPlanck, 5000, grid)
	require.NoError(t, err)
	rj, err := Compute(LawRayleighJeans, 5000, grid)
	require.NoError(t, err)

	report, err := Diverge(planck, rj, threshold)
	require.NoError(t, err)
	return planck, report
}

func TestDivergeFindsCatastropheWavelength(t *testing.T) {
	_, report := divergeFixture(t, 10)

	require.True(t, report.Found)
	// At 5000 K the classical curve reaches 10x Planck near 800 nm.
	assert.InDelta(t, 800, report.CatastropheNm, 50)
	assert.Equal(t, 5000.0, report.Temperature)
}

func TestDivergeThresholdMonotonic(t *testing.T) {
	_, loose := divergeFixture(t, 10)
	_, strict := divergeFixture(t, 50)

	require.True(t, loose.Found)
	require.True(t, strict.Found)
	// A harsher threshold is only met deeper into the UV.
	assert.Less(t, strict.CatastropheNm, loose.CatastropheNm)
}

func TestDivergeRatiosGrowTowardUV(t *testing.T) {
	planck, report := divergeFixture(t, 10)

	n := len(report.Ratios)
	assert.Greater(t, report.Ratios[0], report.Ratios[n-1])
	assert.Equal(t, report.MaxRatio, report.Ratios[0])

	// Every classical sample overshoots Planck.
	for i, r := range report.Ratios {
		assert.Greater(t, r, 1.0, "sample %d (%g nm)", i, planck.WavelengthsNm[i])
	}
}

func TestDivergeIgnoresPresentationScaling(t *testing.T) {
	grid := defaultGrid(t)
	planck, err := Compute(LawPlanck, 5000, grid)
	require.NoError(t, err)
	rj, err := Compute(LawRayleighJeans, 5000, grid)
	require.NoError(t, err)

	raw, err := Diverge(planck, rj, 10)
	require.NoError(t, err)

	// Normalize/anchor for display, then re-run: the physics must not move.
	_, err = planck.Normalize()
	require.NoError(t, err)
	require.NoError(t, rj.AnchorTo(planck, 1000))

	scaled, err := Diverge(planck, rj, 10)
	require.NoError(t, err)

	assert.Equal(t, raw.CatastropheNm, scaled.CatastropheNm)
	assert.InEpsilon(t, raw.MaxRatio, scaled.MaxRatio, 1e-9)
}

func TestDivergeValidation(t *testing.T) {
	grid := defaultGrid(t)
	planck, err := Compute(LawPlanck, 5000, grid)
	require.NoError(t, err)
	rj, err := Compute(LawRayleighJeans, 5000, grid)
	require.NoError(t, err)

	_, err = Diverge(planck, rj, 1)
	require.Error(t, err)

	short, err := Compute(LawRayleighJeans, 5000, []float64{100, 200})
	require.NoError(t, err)
	_, err = Diverge(planck, short, 10)
	require.ErrorIs(t, err, ErrGridMismatch)
}

func TestRatioAt(t *testing.T) {
	planck, report := divergeFixture(t, 10)

	// In the far infrared the classical law is nearly right.
	r, err := report.RatioAt(planck.WavelengthsNm, 3000)
	require.NoError(t, err)
	assert.InDelta(t, 1.7, r, 0.2)

	// Deep UV: catastrophic overshoot.
	r, err = report.RatioAt(planck.WavelengthsNm, 50)
	require.NoError(t, err)
	assert.Greater(t, r, 1e6)
}
