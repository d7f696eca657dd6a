package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.False(t, Mean(nil).Valid)
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}).Float64, 1e-12)
}

func TestSampleStdDev(t *testing.T) {
	assert.False(t, SampleStdDev(nil).Valid)
	assert.False(t, SampleStdDev([]float64{7}).Valid, "n=1 has no sample std")
	assert.InDelta(t, 1.2909944487358056, SampleStdDev([]float64{1, 2, 3, 4}).Float64, 1e-12)
	assert.InDelta(t, 0, SampleStdDev([]float64{3, 3, 3}).Float64, 1e-12)
}

func TestPopStdDev(t *testing.T) {
	_, ok := PopStdDev(nil)
	assert.False(t, ok)

	std, ok := PopStdDev([]float64{1, 2, 3, 4})
	assert.True(t, ok)
	assert.InDelta(t, 1.118033988749895, std, 1e-12)

	std, ok = PopStdDev([]float64{5})
	assert.True(t, ok)
	assert.Zero(t, std)
}

func TestQuantileLinearInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, Quantile(xs, 0.25).Float64, 1e-12)
	assert.InDelta(t, 2.5, Quantile(xs, 0.5).Float64, 1e-12)
	assert.InDelta(t, 3.25, Quantile(xs, 0.75).Float64, 1e-12)
	assert.InDelta(t, 1, Quantile(xs, 0).Float64, 1e-12)
	assert.InDelta(t, 4, Quantile(xs, 1).Float64, 1e-12)

	assert.False(t, Quantile(nil, 0.5).Valid)
	assert.False(t, Quantile(xs, -0.1).Valid)
	assert.False(t, Quantile(xs, 1.1).Valid)

	// input must stay untouched
	unsorted := []float64{3, 1, 2}
	assert.InDelta(t, 2, Median(unsorted).Float64, 1e-12)
	assert.Equal(t, []float64{3, 1, 2}, unsorted)
}

func TestSkewness(t *testing.T) {
	assert.False(t, Skewness([]float64{1, 2}).Valid, "n<3 undefined")
	assert.False(t, Skewness([]float64{2, 2, 2}).Valid, "zero variance undefined")
	assert.InDelta(t, 0, Skewness([]float64{1, 2, 3, 4, 5}).Float64, 1e-12)
	// right-skewed sample, pandas value
	assert.InDelta(t, 2, Skewness([]float64{1, 1, 1, 10}).Float64, 1e-9)
}

func TestKurtosis(t *testing.T) {
	assert.False(t, Kurtosis([]float64{1, 2, 3}).Valid, "n<4 undefined")
	assert.False(t, Kurtosis([]float64{4, 4, 4, 4}).Valid, "zero variance undefined")
	assert.InDelta(t, -1.2, Kurtosis([]float64{1, 2, 3, 4, 5}).Float64, 1e-12)
}

func TestMinMax(t *testing.T) {
	assert.False(t, Min(nil).Valid)
	assert.False(t, Max(nil).Valid)
	assert.InDelta(t, -3, Min([]float64{2, -3, 7}).Float64, 1e-12)
	assert.InDelta(t, 7, Max([]float64{2, -3, 7}).Float64, 1e-12)

	assert.False(t, IntMin(nil).Valid)
	assert.False(t, IntMax(nil).Valid)
	assert.EqualValues(t, 2, IntMin([]int{5, 2, 9}).Int64)
	assert.EqualValues(t, 9, IntMax([]int{5, 2, 9}).Int64)
}

func TestFloatsFromInts(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, FloatsFromInts([]int{1, 2, 3}))
	assert.Empty(t, FloatsFromInts(nil))
}

func TestRoundFloat64(t *testing.T) {
	assert.InDelta(t, 3.14, RoundFloat64(3.14159, 2), 1e-12)
	assert.InDelta(t, 3, RoundFloat64(3.14159, 0), 1e-12)
}
