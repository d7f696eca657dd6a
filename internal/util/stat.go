package util

import (
	"math"
	"sort"

	"gopkg.in/guregu/null.v3"
)

// Descriptive statistics over float64 samples. Conventions follow the pandas
// defaults so numbers stay comparable with prior consumers: sample standard
// deviation (n-1 denominator), linear-interpolation quantiles, adjusted
// Fisher-Pearson skewness, adjusted excess kurtosis. Every function returns
// an invalid null.Float instead of NaN when the statistic is undefined at
// the given sample size.

func Mean(xs []float64) null.Float {
	if len(xs) == 0 {
		return null.Float{}
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return null.FloatFrom(sum / float64(len(xs)))
}

// SampleStdDev is the unbiased (n-1) standard deviation. Undefined for
// fewer than two samples.
func SampleStdDev(xs []float64) null.Float {
	n := len(xs)
	if n < 2 {
		return null.Float{}
	}
	mean := Mean(xs).Float64
	sqSum := 0.0
	for _, x := range xs {
		d := x - mean
		sqSum += d * d
	}
	return null.FloatFrom(math.Sqrt(sqSum / float64(n-1)))
}

// PopStdDev is the population (n denominator) standard deviation, used for
// the coefficient of variation in regularity detection.
func PopStdDev(xs []float64) (float64, bool) {
	n := len(xs)
	if n == 0 {
		return 0, false
	}
	mean := Mean(xs).Float64
	sqSum := 0.0
	for _, x := range xs {
		d := x - mean
		sqSum += d * d
	}
	return math.Sqrt(sqSum / float64(n)), true
}

func Min(xs []float64) null.Float {
	if len(xs) == 0 {
		return null.Float{}
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return null.FloatFrom(min)
}

func Max(xs []float64) null.Float {
	if len(xs) == 0 {
		return null.Float{}
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return null.FloatFrom(max)
}

// Quantile computes the q-th quantile (0 <= q <= 1) with linear
// interpolation between closest ranks, matching pandas' default.
func Quantile(xs []float64, q float64) null.Float {
	n := len(xs)
	if n == 0 || q < 0 || q > 1 {
		return null.Float{}
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return null.FloatFrom(sorted[lower])
	}
	frac := pos - float64(lower)
	return null.FloatFrom(sorted[lower] + frac*(sorted[upper]-sorted[lower]))
}

func Median(xs []float64) null.Float {
	return Quantile(xs, 0.5)
}

// Skewness is the adjusted Fisher-Pearson coefficient G1. Undefined for
// fewer than three samples or a zero-variance sample.
func Skewness(xs []float64) null.Float {
	n := float64(len(xs))
	if len(xs) < 3 {
		return null.Float{}
	}
	mean := Mean(xs).Float64
	m2, m3 := 0.0, 0.0
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return null.Float{}
	}
	g1 := m3 / math.Pow(m2, 1.5)
	return null.FloatFrom(g1 * math.Sqrt(n*(n-1)) / (n - 2))
}

// Kurtosis is the adjusted excess kurtosis G2. Undefined for fewer than
// four samples or a zero-variance sample.
func Kurtosis(xs []float64) null.Float {
	n := float64(len(xs))
	if len(xs) < 4 {
		return null.Float{}
	}
	mean := Mean(xs).Float64
	m2, m4 := 0.0, 0.0
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m4 += d * d * d * d
	}
	m2 /= n
	m4 /= n
	if m2 == 0 {
		return null.Float{}
	}
	g2 := m4/(m2*m2) - 3
	return null.FloatFrom(((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3)))
}

func FloatsFromInts(xs []int) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return fs
}

// IntMin returns the minimum as null.Int, invalid on an empty sample.
func IntMin(xs []int) null.Int {
	if len(xs) == 0 {
		return null.Int{}
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return null.IntFrom(int64(min))
}

// IntMax returns the maximum as null.Int, invalid on an empty sample.
func IntMax(xs []int) null.Int {
	if len(xs) == 0 {
		return null.Int{}
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return null.IntFrom(int64(max))
}

func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}
