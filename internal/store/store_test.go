package store

import (
	"path/filepath"
	"testing"
	"time"

	"uvcat/internal/spectrum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "uvcat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(t *testing.T, tempK float64) *Run {
	t.Helper()
	grid, err := spectrum.Linspace(100, 3000, 50)
	require.NoError(t, err)

	planck, err := spectrum.Compute(spectrum.LawPlanck, tempK, grid)
	require.NoError(t, err)
	rj, err := spectrum.Compute(spectrum.LawRayleighJeans, tempK, grid)
	require.NoError(t, err)

	return &Run{
		Temperature: tempK,
		MinNm:       100,
		MaxNm:       3000,
		Samples:     50,
		Note:        "test run",
		Series:      []*spectrum.Series{planck, rj},
	}
}

func TestSaveAndGetRunRoundTrip(t *testing.T) {
	s := openTestStore(t)

	run := testRun(t, 5000)
	id, err := s.SaveRun(run)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := s.GetRun(id)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, loaded.Temperature)
	assert.Equal(t, "test run", loaded.Note)
	assert.Equal(t, 50, loaded.Samples)
	require.Len(t, loaded.Series, 2)

	// Series come back sorted by law name; find the Planck one.
	var planck *spectrum.Series
	for _, series := range loaded.Series {
		if series.Law == spectrum.LawPlanck {
			planck = series
		}
	}
	require.NotNil(t, planck)
	require.Len(t, planck.Values, 50)
	assert.Equal(t, run.Series[0].Values, planck.Values)
	assert.Equal(t, run.Series[0].WavelengthsNm, planck.WavelengthsNm)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRun("missing")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestSaveRunRejectsEmpty(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SaveRun(&Run{Temperature: 5000})
	require.Error(t, err)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	old := testRun(t, 3000)
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	oldID, err := s.SaveRun(old)
	require.NoError(t, err)

	recent := testRun(t, 6000)
	recentID, err := s.SaveRun(recent)
	require.NoError(t, err)

	list, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recentID, list[0].ID)
	assert.Equal(t, oldID, list[1].ID)
	assert.ElementsMatch(t, []string{"planck", "rayleigh-jeans"}, list[0].Laws)
}

func TestDeleteRun(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveRun(testRun(t, 5000))
	require.NoError(t, err)

	require.NoError(t, s.DeleteRun(id))
	_, err = s.GetRun(id)
	require.ErrorIs(t, err, ErrRunNotFound)

	require.ErrorIs(t, s.DeleteRun(id), ErrRunNotFound)
}

func TestPruneRemovesOnlyOldRuns(t *testing.T) {
	s := openTestStore(t)

	old := testRun(t, 3000)
	old.CreatedAt = time.Now().UTC().Add(-60 * 24 * time.Hour)
	_, err := s.SaveRun(old)
	require.NoError(t, err)

	keptID, err := s.SaveRun(testRun(t, 5000))
	require.NoError(t, err)

	n, err := s.Prune(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keptID, list[0].ID)
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uvcat.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveRun(testRun(t, 5000))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopen: migrations must be idempotent and data intact.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	loaded, err := s2.GetRun(id)
	require.NoError(t, err)
	assert.Len(t, loaded.Series, 2)
}
