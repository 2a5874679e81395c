package hypothesis

import (
	"math"

	"convsig/domain/outcome"
)

// WilsonInterval computes the Wilson score confidence interval for a
// binomial proportion. Preferred over the normal approximation for small
// samples and proportions near 0 or 1. Bounds are always clamped to [0,1];
// total == 0 yields the empty-evidence interval [0,0].
func (s *Suite) WilsonInterval(successes, total int, confidence float64) outcome.ConfidenceInterval {
	if confidence <= 0 || confidence >= 1 {
		confidence = 1 - s.alpha
	}
	if total <= 0 {
		return outcome.ConfidenceInterval{Lower: 0, Upper: 0, Level: confidence}
	}
	if successes < 0 {
		successes = 0
	}
	if successes > total {
		successes = total
	}

	n := float64(total)
	p := float64(successes) / n
	z := s.dist.NormalQuantile(1 - (1-confidence)/2)
	z2 := z * z

	denominator := 1 + z2/n
	center := p + z2/(2*n)
	margin := z * math.Sqrt((p*(1-p)+z2/(4*n))/n)

	lower := (center - margin) / denominator
	upper := (center + margin) / denominator
	if lower < 0 {
		lower = 0
	}
	if upper > 1 {
		upper = 1
	}

	return outcome.ConfidenceInterval{Lower: lower, Upper: upper, Level: confidence}
}

// WilsonProportionTest wraps the Wilson interval as a TestResult so the
// conversion-rate dimension can travel with the parametric tests. The
// statistic is the observed proportion; the p-value is a two-sided normal
// test of the proportion against 0.5.
func (s *Suite) WilsonProportionTest(successes, total int) outcome.TestResult {
	if total == 0 {
		return s.neutralResult(outcome.TestWilson, 0, outcome.AssumptionInsufficientSample)
	}

	ci := s.WilsonInterval(successes, total, 1-s.alpha)
	n := float64(total)
	p := float64(successes) / n

	se := math.Sqrt(0.25 / n) // binomial SE under the null p0 = 0.5
	z := (p - 0.5) / se
	pValue := clampP(2 * (1 - s.dist.NormalCDF(math.Abs(z))))

	return outcome.TestResult{
		TestType:           outcome.TestWilson,
		Statistic:          p,
		PValue:             pValue,
		EffectSize:         2*p - 1, // signed distance from an even split
		ConfidenceInterval: ci,
		SampleSize:         total,
		Assumptions:        []string{outcome.AssumptionNormalApprox},
	}
}
