package spectrum

import (
	"context"
	"testing"

	"uvcat/internal/physics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGrid(t *testing.T) []float64 {
	t.Helper()
	grid, err := Linspace(1, 3000, 1000)
	require.NoError(t, err)
	return grid
}

func TestParseLaw(t *testing.T) {
	for in, want := range map[string]Law{
		"planck":         LawPlanck,
		"p":              LawPlanck,
		"rj":             LawRayleighJeans,
		"classical":      LawRayleighJeans,
		"rayleigh-jeans": LawRayleighJeans,
		"wien":           LawWien,
		"w":              LawWien,
	} {
		got, err := ParseLaw(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLaw("jeans")
	require.Error(t, err)
}

func TestComputePlanckPeakNearWienDisplacement(t *testing.T) {
	grid := defaultGrid(t)
	s, err := Compute(LawPlanck, 5000, grid)
	require.NoError(t, err)

	peakNm, peakVal, err := s.Peak()
	require.NoError(t, err)
	assert.Greater(t, peakVal, 0.0)

	// The sampled peak should land within one grid step of b/T.
	wien, err := physics.PeakWavelength(5000)
	require.NoError(t, err)
	step := grid[1] - grid[0]
	assert.InDelta(t, wien/MetersPerNm, peakNm, step)
}

func TestComputeRejectsBadArguments(t *testing.T) {
	grid := defaultGrid(t)

	_, err := Compute(LawPlanck, -10, grid)
	require.ErrorIs(t, err, physics.ErrNonPositiveTemperature)

	_, err = Compute(LawPlanck, 5000, nil)
	require.ErrorIs(t, err, ErrEmptySeries)

	_, err = Compute(Law("bogus"), 5000, grid)
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	s, err := Compute(LawPlanck, 5000, defaultGrid(t))
	require.NoError(t, err)

	factor, err := s.Normalize()
	require.NoError(t, err)
	assert.Greater(t, factor, 0.0)

	_, max, err := s.Peak()
	require.NoError(t, err)
	assert.Equal(t, 1.0, max)
	assert.Equal(t, factor, s.Scale)
}

func TestAnchorTo(t *testing.T) {
	grid := defaultGrid(t)
	planck, err := Compute(LawPlanck, 5000, grid)
	require.NoError(t, err)
	_, err = planck.Normalize()
	require.NoError(t, err)

	rj, err := Compute(LawRayleighJeans, 5000, grid)
	require.NoError(t, err)
	require.NoError(t, rj.AnchorTo(planck, 1000))

	// Equal at the anchor sample.
	idx, err := NearestIndex(grid, 1000)
	require.NoError(t, err)
	assert.InEpsilon(t, planck.Values[idx], rj.Values[idx], 1e-12)

	// The anchored classical curve still blows up in the UV.
	uvIdx, err := NearestIndex(grid, 100)
	require.NoError(t, err)
	assert.Greater(t, rj.Values[uvIdx], planck.Values[uvIdx])
}

func TestAnchorToGridMismatch(t *testing.T) {
	a, err := Compute(LawPlanck, 5000, []float64{100, 200, 300})
	require.NoError(t, err)
	b, err := Compute(LawRayleighJeans, 5000, []float64{100, 200})
	require.NoError(t, err)
	require.ErrorIs(t, b.AnchorTo(a, 200), ErrGridMismatch)
}

func TestComputeBatch(t *testing.T) {
	grid := defaultGrid(t)
	temps := []float64{3000, 4000, 5000, 6000}

	batch, err := ComputeBatch(context.Background(), LawPlanck, temps, grid)
	require.NoError(t, err)
	require.Len(t, batch, len(temps))

	for i, s := range batch {
		require.NotNil(t, s, "series %d", i)
		assert.Equal(t, temps[i], s.Temperature)

		want, err := Compute(LawPlanck, temps[i], grid)
		require.NoError(t, err)
		assert.Equal(t, want.Values, s.Values)
	}

	// Hotter bodies radiate more at every wavelength.
	for i := range grid {
		assert.Greater(t, batch[3].Values[i], batch[0].Values[i])
	}
}

func TestComputeBatchPropagatesError(t *testing.T) {
	_, err := ComputeBatch(context.Background(), LawPlanck, []float64{5000, -1}, defaultGrid(t))
	require.ErrorIs(t, err, physics.ErrNonPositiveTemperature)
}

func TestComputeBatchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ComputeBatch(ctx, LawPlanck, []float64{5000}, defaultGrid(t))
	require.ErrorIs(t, err, context.Canceled)
}
