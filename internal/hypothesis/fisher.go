package hypothesis

import (
	"math"

	"convsig/domain/outcome"
)

// FisherCombined combines k independent p-values via Fisher's method:
// X = -2 * sum(ln p_i) follows a chi-square distribution with 2k degrees of
// freedom under the joint null. Non-positive, NaN, or out-of-range p-values
// are filtered before combining; an empty (post-filter) input combines to 1.
func (s *Suite) FisherCombined(pValues []float64) float64 {
	valid := make([]float64, 0, len(pValues))
	for _, p := range pValues {
		if math.IsNaN(p) || p <= 0 || p > 1 {
			continue
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return 1.0
	}

	statistic := 0.0
	for _, p := range valid {
		statistic += math.Log(p)
	}
	statistic *= -2

	df := float64(2 * len(valid))
	return clampP(1 - s.dist.ChiSquareCDF(statistic, df))
}

// FisherCombinedTest wraps FisherCombined as a TestResult carrying the
// chi-square statistic and its degrees of freedom.
func (s *Suite) FisherCombinedTest(pValues []float64) outcome.TestResult {
	valid := 0
	statistic := 0.0
	for _, p := range pValues {
		if math.IsNaN(p) || p <= 0 || p > 1 {
			continue
		}
		statistic += math.Log(p)
		valid++
	}
	if valid == 0 {
		return s.neutralResult(outcome.TestFisherCombine, 0, outcome.AssumptionDegenerateInput)
	}
	statistic *= -2
	df := float64(2 * valid)

	return outcome.TestResult{
		TestType:         outcome.TestFisherCombine,
		Statistic:        statistic,
		PValue:           clampP(1 - s.dist.ChiSquareCDF(statistic, df)),
		EffectSize:       0,
		DegreesOfFreedom: df,
		SampleSize:       valid,
		ConfidenceInterval: outcome.ConfidenceInterval{
			Lower: 0,
			Upper: 0,
			Level: 1 - s.alpha,
		},
	}
}
