package hypothesis

import (
	"math"
	"sort"

	"convsig/domain/outcome"
	"convsig/internal/numeric"
)

// StatisticFn reduces a sample to a single statistic (e.g. the mean).
type StatisticFn func(data []float64) float64

// TwoSampleStatisticFn reduces two samples to a single test statistic.
type TwoSampleStatisticFn func(a, b []float64) float64

// MeanDifference is the default two-sample statistic for permutation tests.
func MeanDifference(a, b []float64) float64 {
	return numeric.Mean(a) - numeric.Mean(b)
}

// BootstrapCI estimates a confidence interval for an arbitrary statistic by
// resampling with replacement and taking the (alpha/2, 1-alpha/2)
// percentiles of the bootstrap distribution.
func (s *Suite) BootstrapCI(data []float64, stat StatisticFn) outcome.ConfidenceInterval {
	level := 1 - s.alpha
	if len(data) < 2 {
		return outcome.ConfidenceInterval{Lower: 0, Upper: 0, Level: level}
	}
	if stat == nil {
		stat = numeric.Mean
	}

	rng := s.rng()
	resample := make([]float64, len(data))
	boot := make([]float64, s.bootstrapSamples)
	for i := 0; i < s.bootstrapSamples; i++ {
		for j := range resample {
			resample[j] = data[rng.Intn(len(data))]
		}
		boot[i] = stat(resample)
	}
	sort.Float64s(boot)

	lower := numeric.Percentile(boot, 100*s.alpha/2)
	upper := numeric.Percentile(boot, 100*(1-s.alpha/2))
	if lower > upper {
		lower, upper = upper, lower
	}
	return outcome.ConfidenceInterval{Lower: lower, Upper: upper, Level: level}
}

// PermutationTest pools both samples, reshuffles the group assignment, and
// recomputes the statistic to build an empirical null distribution. The
// p-value is the fraction of permuted statistics at least as extreme as the
// observed one. Symmetric under swapping the two samples.
func (s *Suite) PermutationTest(a, b []float64, stat TwoSampleStatisticFn) outcome.TestResult {
	total := len(a) + len(b)
	if len(a) < 2 || len(b) < 2 {
		return s.neutralResult(outcome.TestPermutation, total, outcome.AssumptionInsufficientSample)
	}
	if stat == nil {
		stat = MeanDifference
	}

	observed := stat(a, b)

	pooled := make([]float64, 0, total)
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)

	rng := s.rng()
	extreme := 0
	shuffled := make([]float64, total)
	for i := 0; i < s.permutationSamples; i++ {
		copy(shuffled, pooled)
		// Fisher-Yates
		for j := total - 1; j > 0; j-- {
			k := rng.Intn(j + 1)
			shuffled[j], shuffled[k] = shuffled[k], shuffled[j]
		}
		perm := stat(shuffled[:len(a)], shuffled[len(a):])
		if math.Abs(perm) >= math.Abs(observed) {
			extreme++
		}
	}
	pValue := clampP(float64(extreme) / float64(s.permutationSamples))

	return outcome.TestResult{
		TestType:   outcome.TestPermutation,
		Statistic:  observed,
		PValue:     pValue,
		EffectSize: observed,
		ConfidenceInterval: outcome.ConfidenceInterval{
			Lower: observed,
			Upper: observed,
			Level: 1 - s.alpha,
		},
		SampleSize: total,
	}
}
