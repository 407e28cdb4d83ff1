package utils_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sed-source/utils"
)

func TestValidateScalar(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		domain  utils.Domain
		want    float64
		wantErr error
	}{
		{"any float", -2.5, utils.AnyValue, -2.5, nil},
		{"any int", 3, utils.AnyValue, 3, nil},
		{"not a number", "3", utils.AnyValue, 0, utils.ErrType},
		{"bool", false, utils.AnyValue, 0, utils.ErrType},
		{"positive zero", 0.0, utils.Positive, 0, nil},
		{"positive negative", -1.0, utils.Positive, 0, utils.ErrValue},
		{"strictly positive zero", 0, utils.StrictlyPositive, 0, utils.ErrValue},
		{"negative", -4, utils.Negative, -4, nil},
		{"negative positive", 1e-9, utils.Negative, 0, utils.ErrValue},
		{"strictly negative zero", 0.0, utils.StrictlyNegative, 0, utils.ErrValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.ValidateScalar("v", tc.value, tc.domain)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateRange(t *testing.T) {
	_, err := utils.ValidateRange("dec", 91.0, -90, 90)
	require.ErrorIs(t, err, utils.ErrValue)
	assert.Contains(t, err.Error(), "[-90:90]")

	got, err := utils.ValidateRange("dec", -90, -90, 90)
	require.NoError(t, err)
	assert.Equal(t, -90.0, got)

	_, err = utils.ValidateRange("dec", nil, -90, 90)
	require.ErrorIs(t, err, utils.ErrType)
}

func TestValidateArray(t *testing.T) {
	got, err := utils.ValidateArray("flux", []int32{1, 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)

	got, err = utils.ValidateArray("flux", []any{uint16(1), 2.5}, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, got)

	_, err = utils.ValidateArray("flux", []float64{1, 2}, 3)
	require.ErrorIs(t, err, utils.ErrValue)
	assert.Contains(t, err.Error(), "expected 3 but found 2")

	_, err = utils.ValidateArray("flux", 1.0, -1)
	require.ErrorIs(t, err, utils.ErrType)
	_, err = utils.ValidateArray("flux", [][]float64{{1}}, -1)
	require.ErrorIs(t, err, utils.ErrType)
	_, err = utils.ValidateArray("flux", []any{1.0, "x"}, -1)
	require.ErrorIs(t, err, utils.ErrType)
}

func TestValidateArrayCopies(t *testing.T) {
	in := []float64{1, 2, 3}
	out, err := utils.ValidateArray("flux", in, 3)
	require.NoError(t, err)
	out[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestIsUnset(t *testing.T) {
	assert.True(t, utils.IsUnset(nil))
	assert.True(t, utils.IsUnset([]float64(nil)))
	assert.True(t, utils.IsUnset([]any(nil)))
	assert.False(t, utils.IsUnset([]float64{}))
	assert.False(t, utils.IsUnset(0))
}

func TestIsIntegral(t *testing.T) {
	assert.True(t, utils.IsIntegral(3))
	assert.True(t, utils.IsIntegral(-0))
	assert.False(t, utils.IsIntegral(2.5))
	assert.False(t, utils.IsIntegral(math.NaN()))
	assert.False(t, utils.IsIntegral(math.Inf(1)))
}
