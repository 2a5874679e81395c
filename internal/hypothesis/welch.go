package hypothesis

import (
	"math"

	"convsig/domain/outcome"
	"convsig/internal/numeric"
)

// WelchTTest compares the means of two groups without assuming equal
// variances. Swapping the groups negates the statistic and effect size but
// leaves the p-value unchanged.
func (s *Suite) WelchTTest(a, b []float64) outcome.TestResult {
	n1 := float64(len(a))
	n2 := float64(len(b))
	total := len(a) + len(b)

	if len(a) < 2 || len(b) < 2 {
		return s.neutralResult(outcome.TestWelchT, total, outcome.AssumptionInsufficientSample)
	}

	mean1 := numeric.Mean(a)
	mean2 := numeric.Mean(b)
	var1 := numeric.Variance(a)
	var2 := numeric.Variance(b)

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		// Both groups constant: no usable variance signal
		return s.neutralResult(outcome.TestWelchT, total, outcome.AssumptionDegenerateInput)
	}

	tStat := (mean1 - mean2) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))
	if math.IsNaN(df) || df < 1 {
		df = 1
	}

	pValue := clampP(2 * (1 - s.dist.TCDF(math.Abs(tStat), df)))

	// Cohen's d with pooled standard deviation
	pooledSD := math.Sqrt(((n1-1)*var1 + (n2-1)*var2) / (n1 + n2 - 2))
	effectSize := 0.0
	if pooledSD > 0 {
		effectSize = (mean1 - mean2) / pooledSD
	}

	diff := mean1 - mean2
	tCrit := s.dist.TQuantile(1-s.alpha/2, df)
	margin := tCrit * se

	return outcome.TestResult{
		TestType:   outcome.TestWelchT,
		Statistic:  tStat,
		PValue:     pValue,
		EffectSize: effectSize,
		ConfidenceInterval: outcome.ConfidenceInterval{
			Lower: diff - margin,
			Upper: diff + margin,
			Level: 1 - s.alpha,
		},
		DegreesOfFreedom: df,
		SampleSize:       total,
	}
}
