package hypothesis

import (
	"math"

	"convsig/domain/outcome"
	"convsig/internal/numeric"
)

// MannWhitneyU runs the rank-based Mann-Whitney U test with mid-rank tie
// handling. The reported statistic is U1 (first group); U1 + U2 == n1*n2
// always holds. Effect size is the rank-biserial correlation
// 1 - 2*U1/(n1*n2). The p-value uses the tie-corrected normal approximation
// of the rank-sum distribution.
func (s *Suite) MannWhitneyU(a, b []float64) outcome.TestResult {
	n1 := len(a)
	n2 := len(b)
	total := n1 + n2

	if n1 < 2 || n2 < 2 {
		return s.neutralResult(outcome.TestMannWhitneyU, total, outcome.AssumptionInsufficientSample)
	}

	pooled := make([]float64, 0, total)
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	ranks := numeric.Ranks(pooled)

	// Rank sum of the first group
	r1 := 0.0
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}

	fn1 := float64(n1)
	fn2 := float64(n2)
	u1 := r1 - fn1*(fn1+1)/2
	prod := fn1 * fn2

	// Rank-biserial effect size
	effectSize := 1 - 2*u1/prod

	// Tie-corrected variance of U under the null
	n := float64(total)
	tieSum := tieCorrection(pooled)
	sigma2 := prod / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if sigma2 <= 0 {
		// All observations identical: the rank distribution is degenerate
		res := s.neutralResult(outcome.TestMannWhitneyU, total, outcome.AssumptionDegenerateInput)
		res.Statistic = u1
		res.EffectSize = 0
		return res
	}

	mu := prod / 2
	z := (u1 - mu) / math.Sqrt(sigma2)
	pValue := clampP(2 * (1 - s.dist.NormalCDF(math.Abs(z))))

	assumptions := []string{outcome.AssumptionNormalApprox}
	if tieSum > 0 {
		assumptions = append(assumptions, outcome.AssumptionTieCorrection)
	}

	return outcome.TestResult{
		TestType:   outcome.TestMannWhitneyU,
		Statistic:  u1,
		PValue:     pValue,
		EffectSize: effectSize,
		ConfidenceInterval: outcome.ConfidenceInterval{
			Lower: effectSize,
			Upper: effectSize,
			Level: 1 - s.alpha,
		},
		SampleSize:  total,
		Assumptions: assumptions,
	}
}

// tieCorrection returns sum(t^3 - t) over tie groups of the pooled sample.
func tieCorrection(pooled []float64) float64 {
	counts := make(map[float64]int, len(pooled))
	for _, v := range pooled {
		counts[v]++
	}
	sum := 0.0
	for _, c := range counts {
		if c > 1 {
			fc := float64(c)
			sum += fc*fc*fc - fc
		}
	}
	return sum
}
