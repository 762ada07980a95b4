package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	// Golden values for the pinned R-7 convention.
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}

	q1, err := Quantile(data, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, q1, 1e-12)

	q3, err := Quantile(data, 0.75)
	require.NoError(t, err)
	assert.InDelta(t, 7.75, q3, 1e-12)
}

func TestQuantileEdges(t *testing.T) {
	data := []float64{5, 1, 3}

	lo, err := Quantile(data, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, lo)

	hi, err := Quantile(data, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, hi)

	med, err := Quantile(data, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 3.0, med)
}

func TestQuantileSingleValue(t *testing.T) {
	q, err := Quantile([]float64{7}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 7.0, q)
}

func TestQuantileInvalidInput(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.Error(t, err)

	_, err = Quantile([]float64{1}, 1.5)
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 60.0, Round2(60.0))
	assert.Equal(t, 0.0, Round2(0.004))
}
