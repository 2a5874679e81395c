// Package analyzer correlates per-session outcome metrics between a
// successful and a failed group, derives heuristic causality indicators, and
// aggregates the statistical evidence into a decision-grade summary.
package analyzer

import (
	"context"
	"math"
	"sort"
	"time"

	"convsig/domain/core"
	"convsig/domain/outcome"
	"convsig/internal/correction"
	"convsig/internal/dist"
	"convsig/internal/hypothesis"
	"convsig/internal/numeric"
)

// causalityDiscount attenuates correlation strength into the causality
// heuristic. Correlation is necessary but not sufficient for causal claims,
// so derived strength is always below the correlation that produced it.
const causalityDiscount = 0.8

// temporalNeutral is the temporal-precedence sub-score used when the engine
// has no per-event timestamps to order cause and effect.
const temporalNeutral = 0.5

// Confidence blend weights: factor confidence / causality strength /
// evidence quality.
const (
	weightFactorConfidence = 0.4
	weightCausality        = 0.3
	weightEvidence         = 0.3
)

// Analyzer computes outcome correlation analyses. Stateless apart from its
// configuration; safe for concurrent use.
type Analyzer struct {
	opts  outcome.Options
	suite *hypothesis.Suite
	dist  dist.Provider
}

// New creates an analyzer with the approximate distribution provider.
func New(opts outcome.Options) *Analyzer {
	opts = opts.Normalized()
	return &Analyzer{
		opts: opts,
		suite: hypothesis.NewSuite(hypothesis.Config{
			Alpha:              opts.AlphaLevel,
			BootstrapSamples:   opts.BootstrapSamples,
			PermutationSamples: opts.PermutationSamples,
		}),
		dist: dist.ApproxProvider{},
	}
}

// Analyze runs the full correlation analysis between the successful and
// failed outcome groups. Low-sample inputs degrade to a no-evidence result;
// the error return exists for the orchestrator port and is always nil here.
func (a *Analyzer) Analyze(ctx context.Context, successful, failed []outcome.OutcomeRecord) (outcome.OutcomeAnalysisResult, error) {
	start := time.Now()

	result := outcome.OutcomeAnalysisResult{
		AnalysisID: core.NewAnalysisID(),
		SampleSize: len(successful) + len(failed),
		ComputedAt: core.Now(),
	}

	if len(successful) < 2 || len(failed) < 2 {
		// Insufficient data on one side: report no evidence, never an error
		result.StatisticalEvidence = outcome.StatisticalEvidence{PValue: 1.0}
		result.Correction = correction.BenjaminiHochberg(nil, a.opts.AlphaLevel)
		result.ProcessingTime = time.Since(start)
		return result, nil
	}

	factors, doseScores := a.correlateFactors(successful, failed)

	retained := make([]outcome.CorrelationFactor, 0, len(factors))
	for _, f := range factors {
		if math.Abs(f.Strength) >= a.opts.CorrelationThreshold {
			retained = append(retained, f)
		}
	}
	sort.Slice(retained, func(i, j int) bool {
		return math.Abs(retained[i].Strength) > math.Abs(retained[j].Strength)
	})
	result.PrimaryFactors = retained

	result.CausalityIndicators = a.deriveCausality(retained, doseScores)
	result.TestResults = a.runGroupTests(successful, failed)
	result.Correction = a.correctTests(result.TestResults)
	result.StatisticalEvidence = a.aggregateEvidence(retained, doseScores, result.TestResults, successful, failed)
	result.ConfidenceScore = a.blendConfidence(retained, result.CausalityIndicators, result.StatisticalEvidence)
	result.ProcessingTime = time.Since(start)
	return result, nil
}

// correlateFactors computes the point-biserial correlation of each metric
// dimension against group membership, with the correlation t-test p-value.
// Also returns the per-metric dose-response regression score.
func (a *Analyzer) correlateFactors(successful, failed []outcome.OutcomeRecord) ([]outcome.CorrelationFactor, map[core.MetricKey]float64) {
	n := len(successful) + len(failed)
	membership := make([]float64, 0, n)
	for range successful {
		membership = append(membership, 1)
	}
	for range failed {
		membership = append(membership, 0)
	}

	factors := make([]outcome.CorrelationFactor, 0, 4)
	doseScores := make(map[core.MetricKey]float64, 4)

	for _, dim := range dimensions() {
		values := append(extractValues(successful, dim), extractValues(failed, dim)...)

		r := numeric.PearsonCorrelation(values, membership)
		p := a.correlationPValue(r, n)

		factors = append(factors, outcome.CorrelationFactor{
			Factor:       dim.key,
			Strength:     r,
			Confidence:   confidenceFromP(p),
			Significance: p,
			SampleSize:   n,
		})
		doseScores[dim.key] = numeric.LinearRegression(values, membership).RSquared
	}
	return factors, doseScores
}

// correlationPValue converts Pearson's r into a two-tailed p-value via the
// t-distribution with n-2 degrees of freedom.
func (a *Analyzer) correlationPValue(r float64, n int) float64 {
	if n < 3 || r == 0 {
		return 1.0
	}
	abs := math.Abs(r)
	if abs >= 1 {
		return 0.0
	}
	t := abs * math.Sqrt(float64(n-2)/(1-abs*abs))
	p := 2 * (1 - a.dist.TCDF(t, float64(n-2)))
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// deriveCausality turns retained correlation factors into heuristic
// causality indicators. Strength is the discounted |r|, gated by the
// configured threshold; this is a ranking signal, not a causal estimate.
func (a *Analyzer) deriveCausality(retained []outcome.CorrelationFactor, doseScores map[core.MetricKey]float64) []outcome.CausalityIndicator {
	indicators := make([]outcome.CausalityIndicator, 0, len(retained))
	for _, f := range retained {
		strength := math.Abs(f.Strength) * causalityDiscount
		if strength < a.opts.CausalityThreshold {
			continue
		}
		direction := outcome.DirectionPositive
		if f.Strength < 0 {
			direction = outcome.DirectionNegative
		}
		indicators = append(indicators, outcome.CausalityIndicator{
			Factor:            f.Factor,
			Strength:          strength,
			Confidence:        f.Confidence * causalityDiscount,
			Direction:         direction,
			TemporalScore:     temporalNeutral,
			DoseResponseScore: doseScores[f.Factor],
		})
	}
	return indicators
}

// runGroupTests runs one Welch's t-test per metric dimension between the two
// groups, plus a Wilson proportion test of the overall conversion rate. The
// conversion dimension's t-test on the 0/1 indicators is the standard
// large-sample proportion comparison.
func (a *Analyzer) runGroupTests(successful, failed []outcome.OutcomeRecord) []outcome.TestResult {
	tests := make([]outcome.TestResult, 0, 5)
	for _, dim := range dimensions() {
		res := a.suite.WelchTTest(extractValues(successful, dim), extractValues(failed, dim))
		tests = append(tests, res)
	}

	converted := 0
	for _, r := range successful {
		if r.Converted {
			converted++
		}
	}
	for _, r := range failed {
		if r.Converted {
			converted++
		}
	}
	tests = append(tests, a.suite.WilsonProportionTest(converted, len(successful)+len(failed)))
	return tests
}

// correctTests applies Benjamini-Hochberg across the per-metric tests.
func (a *Analyzer) correctTests(tests []outcome.TestResult) outcome.MultipleTestingCorrection {
	ps := make([]float64, len(tests))
	for i, t := range tests {
		ps[i] = t.PValue
	}
	return correction.BenjaminiHochberg(ps, a.opts.AlphaLevel)
}

// aggregateEvidence folds the retained factors into a single evidence
// summary: mean strength, first-order partial correlation of the strongest
// factor controlling for engagement, Fisher-combined significance, and the
// mean standardized group difference.
func (a *Analyzer) aggregateEvidence(retained []outcome.CorrelationFactor, doseScores map[core.MetricKey]float64, tests []outcome.TestResult, successful, failed []outcome.OutcomeRecord) outcome.StatisticalEvidence {
	if len(retained) == 0 {
		return outcome.StatisticalEvidence{PValue: 1.0}
	}

	strengthSum := 0.0
	doseSum := 0.0
	ps := make([]float64, 0, len(retained))
	for _, f := range retained {
		strengthSum += math.Abs(f.Strength)
		doseSum += doseScores[f.Factor]
		ps = append(ps, f.Significance)
	}
	meanStrength := strengthSum / float64(len(retained))

	effectSum := 0.0
	effectCount := 0
	for _, t := range tests {
		if t.Degraded() {
			continue
		}
		effectSum += math.Abs(t.EffectSize)
		effectCount++
	}
	meanEffect := 0.0
	if effectCount > 0 {
		meanEffect = effectSum / float64(effectCount)
	}

	return outcome.StatisticalEvidence{
		CorrelationCoefficient: meanStrength,
		PartialCorrelation:     a.partialForStrongest(retained[0], successful, failed),
		RSquared:               meanStrength * meanStrength,
		PValue:                 a.suite.FisherCombined(ps),
		EffectSize:             meanEffect,
		DoseResponseEvidence:   doseSum / float64(len(retained)),
	}
}

// partialForStrongest computes the partial correlation of the strongest
// factor against membership controlling for engagement score (or duration
// when engagement itself is the strongest factor). This controls exactly one
// observed covariate and makes no confound-free claim.
func (a *Analyzer) partialForStrongest(strongest outcome.CorrelationFactor, successful, failed []outcome.OutcomeRecord) float64 {
	var factorDim, controlDim metricDimension
	for _, dim := range dimensions() {
		if dim.key == strongest.Factor {
			factorDim = dim
		}
	}
	controlKey := MetricEngagement
	if strongest.Factor == MetricEngagement {
		controlKey = MetricDuration
	}
	for _, dim := range dimensions() {
		if dim.key == controlKey {
			controlDim = dim
		}
	}

	x := append(extractValues(successful, factorDim), extractValues(failed, factorDim)...)
	z := append(extractValues(successful, controlDim), extractValues(failed, controlDim)...)
	membership := make([]float64, 0, len(x))
	for range successful {
		membership = append(membership, 1)
	}
	for range failed {
		membership = append(membership, 0)
	}
	return numeric.PartialCorrelation(x, membership, z)
}

// blendConfidence produces the overall confidence score as a weighted blend
// of factor confidence, causality strength, and evidence quality.
func (a *Analyzer) blendConfidence(retained []outcome.CorrelationFactor, indicators []outcome.CausalityIndicator, evidence outcome.StatisticalEvidence) float64 {
	if len(retained) == 0 {
		return 0
	}

	confSum := 0.0
	for _, f := range retained {
		confSum += f.Confidence
	}
	avgConfidence := confSum / float64(len(retained))

	avgCausality := 0.0
	if len(indicators) > 0 {
		sum := 0.0
		for _, ind := range indicators {
			sum += ind.Strength
		}
		avgCausality = sum / float64(len(indicators))
	}

	// Evidence quality blends explained variance, significance, and a
	// large-effect-anchored (d=0.8) effect size scale.
	effectScale := evidence.EffectSize / 0.8
	if effectScale > 1 {
		effectScale = 1
	}
	quality := (evidence.RSquared + (1 - evidence.PValue) + effectScale) / 3

	score := weightFactorConfidence*avgConfidence + weightCausality*avgCausality + weightEvidence*quality
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// confidenceFromP converts a p-value to a 0-1 confidence score on a log
// scale: p=0.001 maps to ~1, p=1 to 0.
func confidenceFromP(p float64) float64 {
	if p >= 1 {
		return 0
	}
	if p <= 0.001 {
		return 0.99
	}
	c := -math.Log10(p+0.001) / 3.0
	if c > 0.99 {
		c = 0.99
	}
	if c < 0 {
		c = 0
	}
	return c
}
