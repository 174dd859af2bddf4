// Package stats provides the descriptive statistics and hypothesis-test
// helpers shared by the simulation analyzer and its tests.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrEmptySample is returned when a statistic is requested over no data.
var ErrEmptySample = errors.New("sample cannot be empty")

// Mean returns the arithmetic mean of xs. Zero for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (n-1 denominator) of xs.
// Zero for fewer than two values.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	mean := Mean(xs)
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Variance returns the sample variance (n-1 denominator) of xs.
func Variance(xs []float64) float64 {
	sd := StdDev(xs)
	return sd * sd
}

// SortedCopy returns an ascending copy of xs.
func SortedCopy(xs []float64) []float64 {
	out := append([]float64(nil), xs...)
	sort.Float64s(out)
	return out
}

// PercentileSorted returns the p-th percentile (p in [0, 100]) of an
// ascending-sorted sample, using linear interpolation between closest ranks.
func PercentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Percentile returns the p-th percentile of an unsorted sample.
func Percentile(xs []float64, p float64) float64 {
	return PercentileSorted(SortedCopy(xs), p)
}

// TTestResult holds the outcome of a two-sample Welch's t-test.
type TTestResult struct {
	TStatistic       float64
	DegreesOfFreedom float64
	PValue           float64
}

// WelchTTest runs Welch's unequal-variance two-sample t-test on a and b and
// returns the two-tailed p-value. The samples may have different lengths.
// When both samples are constant the test degenerates: equal means yield
// p = 1, different means p = 0.
func WelchTTest(a, b []float64) (TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, ErrEmptySample
	}

	meanA, meanB := Mean(a), Mean(b)
	varA, varB := Variance(a), Variance(b)
	nA, nB := float64(len(a)), float64(len(b))

	seSq := varA/nA + varB/nB
	if seSq == 0 {
		if meanA == meanB {
			return TTestResult{TStatistic: 0, DegreesOfFreedom: nA + nB - 2, PValue: 1}, nil
		}
		return TTestResult{TStatistic: math.Copysign(math.MaxFloat64, meanA-meanB), DegreesOfFreedom: nA + nB - 2, PValue: 0}, nil
	}

	t := (meanA - meanB) / math.Sqrt(seSq)

	// Welch-Satterthwaite degrees of freedom.
	df := seSq * seSq / (varA*varA/(nA*nA*(nA-1)) + varB*varB/(nB*nB*(nB-1)))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return TTestResult{TStatistic: t, DegreesOfFreedom: df, PValue: p}, nil
}
