package models_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sed-source/models"
)

func nan() float64 { return math.NaN() }

func TestLogFluxesBranches(t *testing.T) {
	tests := []struct {
		name                    string
		code                    int
		flux, err               float64
		logFlux, logErr, weight float64
		tol                     float64
	}{
		{"detection", models.CodeDetection, 10, 1, 0.9978285, 0.0434294, 530.1898, 1e-4},
		{"lower limit", models.CodeLowerLimit, 5, 0.2, 0.6989700, 0.2, 0, 1e-7},
		{"upper limit", models.CodeUpperLimit, 5, 0.2, 0.6989700, 0.2, 0, 1e-7},
		{"already log", models.CodeAlreadyLog, 2, 0.1, 2, 0.1, 100, 1e-9},
		{"ignored", models.CodeIgnored, 10, 1, 0.9978285, 0.0434294, 0, 1e-4},
		{"no data", models.CodeNoData, 10, 1, 0, 0, 0, 0},
		{"unknown code", 7, 10, 1, 0, 0, 0, 0},
		{"negative code", -1, 10, 1, 0, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lf, err := models.LogFluxes([]float64{tc.flux}, []float64{tc.err}, []int{tc.code})
			require.NoError(t, err)
			assert.InDelta(t, tc.logFlux, lf.LogFlux[0], tc.tol)
			assert.InDelta(t, tc.logErr, lf.LogError[0], tc.tol)
			assert.InDelta(t, tc.weight, lf.Weight[0], tc.tol)
		})
	}
}

func TestLogFluxesExactPassThrough(t *testing.T) {
	lf, err := models.LogFluxes([]float64{2.0, 5.0}, []float64{0.1, 0.2}, []int{4, 3})
	require.NoError(t, err)

	assert.Equal(t, 2.0, lf.LogFlux[0])
	assert.Equal(t, 0.1, lf.LogError[0])
	assert.Equal(t, 0.2, lf.LogError[1])
	assert.Equal(t, math.Log10(5.0), lf.LogFlux[1])
	assert.Zero(t, lf.Weight[1])
}

func TestLogFluxesDetectionWeightIsInverseVariance(t *testing.T) {
	lf, err := models.LogFluxes([]float64{3.7, 120}, []float64{0.4, 9}, []int{1, 1})
	require.NoError(t, err)
	for i := range lf.Weight {
		assert.InDelta(t, 1/(lf.LogError[i]*lf.LogError[i]), lf.Weight[i], 1e-9)
	}
}

func TestLogFluxesPointsAreIndependent(t *testing.T) {
	flux := []float64{10, 5, 5, 2, 10, 10}
	errs := []float64{1, 0.2, 0.2, 0.1, 1, 1}
	valid := []int{1, 2, 3, 4, 9, 0}

	all, err := models.LogFluxes(flux, errs, valid)
	require.NoError(t, err)

	for i := range valid {
		one, err := models.LogFluxes(flux[i:i+1], errs[i:i+1], valid[i:i+1])
		require.NoError(t, err)
		assert.Equal(t, one.LogFlux[0], all.LogFlux[i], "point %d", i)
		assert.Equal(t, one.LogError[0], all.LogError[i], "point %d", i)
		assert.Equal(t, one.Weight[0], all.Weight[i], "point %d", i)
	}
}

func TestLogFluxesLengthMismatch(t *testing.T) {
	_, err := models.LogFluxes([]float64{1, 2}, []float64{1}, []int{1, 1})
	require.ErrorIs(t, err, models.ErrValue)

	lf, err := models.LogFluxes(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, lf.LogFlux)
}

func TestLogFluxesDomainPolicy(t *testing.T) {
	t.Run("propagates by default", func(t *testing.T) {
		lf, err := models.LogFluxes([]float64{0, -1, 5}, []float64{1, 0.1, 0}, []int{1, 2, 1})
		require.NoError(t, err)
		assert.True(t, math.IsInf(lf.LogFlux[0], -1))
		assert.True(t, math.IsInf(lf.LogError[0], 1))
		assert.True(t, math.IsNaN(lf.LogFlux[1]))
		assert.True(t, math.IsInf(lf.Weight[2], 1), "zero error gives infinite weight")
	})

	t.Run("strict fails fast", func(t *testing.T) {
		_, err := models.LogFluxes([]float64{10, 0}, []float64{1, 1}, []int{1, 1}, models.WithStrictDomain())
		require.ErrorIs(t, err, models.ErrDomain)
		assert.True(t, strings.Contains(err.Error(), "point 1"))

		_, err = models.LogFluxes([]float64{-3}, []float64{1}, []int{3}, models.WithStrictDomain())
		require.ErrorIs(t, err, models.ErrDomain)
	})

	t.Run("strict ignores untouched points", func(t *testing.T) {
		lf, err := models.LogFluxes([]float64{0, 10}, []float64{0, 1}, []int{0, 1}, models.WithStrictDomain())
		require.NoError(t, err)
		assert.Zero(t, lf.LogFlux[0])
	})
}

func TestSourceLogFluxes(t *testing.T) {
	s := populated(t)
	lf, err := s.LogFluxes()
	require.NoError(t, err)
	require.Len(t, lf.Weight, 5)
	assert.InDelta(t, 530.1898, lf.Weight[0], 1e-3)
	assert.InDelta(t, 100, lf.Weight[3], 1e-9)
	assert.Zero(t, lf.Weight[4])

	partial := models.NewSource()
	require.NoError(t, partial.SetValid([]int{1}))
	_, err = partial.LogFluxes()
	require.ErrorIs(t, err, models.ErrValue)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		code   int
		kind   models.PointKind
		usable bool
	}{
		{0, models.KindNoData, false},
		{1, models.KindDetection, true},
		{2, models.KindLowerLimit, false},
		{3, models.KindUpperLimit, false},
		{4, models.KindAlreadyLog, true},
		{9, models.KindIgnored, false},
		{5, models.KindOther, false},
		{-2, models.KindOther, false},
	}
	for _, tc := range tests {
		k := models.KindOf(tc.code)
		assert.Equal(t, tc.kind, k, "code %d", tc.code)
		assert.Equal(t, tc.usable, k.Usable(), "code %d", tc.code)
	}
	assert.Equal(t, "already-log", models.KindAlreadyLog.String())
	assert.Equal(t, "unknown", models.PointKind(42).String())
}

func TestLogFluxRow(t *testing.T) {
	s := populated(t)
	row, err := models.NewLogFluxRow(s)
	require.NoError(t, err)
	assert.Equal(t, "G305.1+0.2", row.Name)
	assert.Equal(t, 2, row.NData)

	line, err := row.AppendLine(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(line), "\n"))
	fields := strings.Fields(string(line))
	require.Len(t, fields, 2+3*5)
	assert.Equal(t, "G305.1+0.2", fields[0])
	assert.Equal(t, "2", fields[1])
	assert.Equal(t, " 0.99783", string(line[35:43]))

	_, err = models.NewLogFluxRow(models.NewSource())
	require.ErrorIs(t, err, models.ErrValue)
}
