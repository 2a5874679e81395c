package outcome

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"convsig/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// OutcomeRecord is one session's outcome metrics as handed over by the
// journey-tracking collaborator. Immutable once captured.
type OutcomeRecord struct {
	Converted           bool               `json:"converted"`
	DurationMs          float64            `json:"duration_ms"`
	EngagementScore     float64            `json:"engagement_score"`
	StepCompletionRates map[string]float64 `json:"step_completion_rates,omitempty"`
}

// CompletionRate is the mean per-step completion for the session,
// 0 when no steps were recorded.
func (r OutcomeRecord) CompletionRate() float64 {
	if len(r.StepCompletionRates) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range r.StepCompletionRates {
		sum += v
	}
	return sum / float64(len(r.StepCompletionRates))
}

// Sample is an ordered sequence of real-valued observations carrying its
// group label. Immutable once captured.
type Sample struct {
	Label  core.GroupLabel `json:"label"`
	Values []float64       `json:"values"`
}

// TestType identifies a hypothesis test
type TestType string

const (
	TestWelchT        TestType = "welch_ttest"
	TestMannWhitneyU  TestType = "mann_whitney_u"
	TestWilson        TestType = "wilson_proportion"
	TestBootstrap     TestType = "bootstrap_ci"
	TestPermutation   TestType = "permutation"
	TestFisherCombine TestType = "fisher_combined"
)

// Assumption flags attached to TestResult when a computation degraded to a
// neutral result instead of failing.
const (
	AssumptionInsufficientSample = "insufficient_sample_size"
	AssumptionDegenerateInput    = "degenerate_input"
	AssumptionNormalApprox       = "normal_approximation"
	AssumptionTieCorrection      = "tie_correction"
)

// ConfidenceInterval is a two-sided interval at a given confidence level.
// INVARIANT: Lower <= Upper.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"` // e.g. 0.95
}

// TestResult contains the outcome of a single hypothesis test.
// INVARIANTS:
// - PValue always in [0.0, 1.0]
// - ConfidenceInterval.Lower <= ConfidenceInterval.Upper
// - EffectSize standardized (Cohen's d, rank-biserial r, etc.)
type TestResult struct {
	TestType           TestType           `json:"test_type"`
	Statistic          float64            `json:"statistic"`
	PValue             float64            `json:"p_value"`
	EffectSize         float64            `json:"effect_size"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	DegreesOfFreedom   float64            `json:"degrees_of_freedom,omitempty"`
	SampleSize         int                `json:"sample_size"`
	Assumptions        []string           `json:"assumptions,omitempty"`
}

// Degraded reports whether the result is a neutral stand-in produced for an
// edge case rather than a genuine test outcome.
func (r TestResult) Degraded() bool {
	for _, a := range r.Assumptions {
		if a == AssumptionInsufficientSample || a == AssumptionDegenerateInput {
			return true
		}
	}
	return false
}

// Significant reports whether the test rejects at the given alpha.
func (r TestResult) Significant(alpha float64) bool {
	return !r.Degraded() && r.PValue < alpha
}

// DegradationCause maps a degraded result's assumption flags onto the domain
// sentinel errors, for callers that classify results in error space. Nil for
// genuine results.
func (r TestResult) DegradationCause() error {
	for _, a := range r.Assumptions {
		switch a {
		case AssumptionInsufficientSample:
			return core.NewSampleSizeError(string(r.TestType), r.SampleSize)
		case AssumptionDegenerateInput:
			return core.NewDegenerateInputError(string(r.TestType))
		}
	}
	return nil
}

// ============================================================================
// CORRELATION / CAUSALITY AGGREGATES
// ============================================================================

// CorrelationFactor describes one metric dimension's association with the
// successful/failed split.
// INVARIANTS: Strength in [-1,1], Confidence in [0,1], Significance in [0,1].
type CorrelationFactor struct {
	Factor       core.MetricKey `json:"factor"`
	Strength     float64        `json:"strength"`
	Confidence   float64        `json:"confidence"`
	Significance float64        `json:"statistical_significance"` // p-value
	SampleSize   int            `json:"sample_size"`
}

// Direction of a causal indication
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// CausalityIndicator is a heuristic ranking signal derived from a
// CorrelationFactor. It is not a rigorous causal estimate: the strength is a
// fixed-ratio discount of the correlation and no confound adjustment is
// performed.
// INVARIANT: Strength <= |parent CorrelationFactor.Strength|.
type CausalityIndicator struct {
	Factor            core.MetricKey `json:"factor"`
	Strength          float64        `json:"strength"` // 0..1
	Confidence        float64        `json:"confidence"`
	Direction         Direction      `json:"direction"`
	TemporalScore     float64        `json:"temporal_score"`
	DoseResponseScore float64        `json:"dose_response_score"`
}

// StatisticalEvidence aggregates the analyzer's evidence across all retained
// factors.
type StatisticalEvidence struct {
	CorrelationCoefficient float64 `json:"correlation_coefficient"`
	PartialCorrelation     float64 `json:"partial_correlation"`
	RSquared               float64 `json:"r_squared"`
	PValue                 float64 `json:"p_value"` // Fisher-combined
	EffectSize             float64 `json:"effect_size"`
	DoseResponseEvidence   float64 `json:"dose_response_evidence"`
}

// OutcomeAnalysisResult is the full product of one orchestrated analysis.
type OutcomeAnalysisResult struct {
	AnalysisID          core.AnalysisID           `json:"analysis_id"`
	PrimaryFactors      []CorrelationFactor       `json:"primary_factors"`
	CausalityIndicators []CausalityIndicator      `json:"causality_indicators"`
	StatisticalEvidence StatisticalEvidence       `json:"statistical_evidence"`
	TestResults         []TestResult              `json:"test_results,omitempty"`
	Correction          MultipleTestingCorrection `json:"correction"`
	ConfidenceScore     float64                   `json:"confidence_score"`
	SampleSize          int                       `json:"sample_size"`
	ProcessingTime      time.Duration             `json:"processing_time"`
	CacheHit            bool                      `json:"cache_hit"`
	ComputedAt          core.Timestamp            `json:"computed_at"`
}

// MultipleTestingCorrection reports a correction procedure over a p-value
// family.
// INVARIANT (Bonferroni): AdjustedPValues[i] >= OriginalPValues[i].
type MultipleTestingCorrection struct {
	Method           string    `json:"method"`
	OriginalAlpha    float64   `json:"original_alpha"`
	AdjustedAlpha    float64   `json:"adjusted_alpha"`
	OriginalPValues  []float64 `json:"original_p_values"`
	AdjustedPValues  []float64 `json:"adjusted_p_values"`
	SignificantCount int       `json:"significant_count"`
}

// ============================================================================
// REQUEST IDENTITY
// ============================================================================

// AnalysisRequest pairs the two outcome groups of one requested analysis.
// Its identity derives deterministically from the groups' contents and is
// used for cache lookup and deduplication.
type AnalysisRequest struct {
	Successful []OutcomeRecord `json:"successful"`
	Failed     []OutcomeRecord `json:"failed"`
}

// Key returns the content-addressed identity of the request.
func (r AnalysisRequest) Key() core.RequestKey {
	return RequestKey(r.Successful, r.Failed)
}

// RequestKey derives the deterministic cache identity of an analysis over two
// outcome groups. Record order matters: the groups are ordered sequences, and
// successful/failed are distinct positions.
func RequestKey(successful, failed []OutcomeRecord) core.RequestKey {
	return core.ComputeRequestKey(fingerprintGroup(successful), fingerprintGroup(failed))
}

func fingerprintGroup(records []OutcomeRecord) string {
	var b strings.Builder
	for _, r := range records {
		if r.Converted {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(r.DurationMs, 'g', -1, 64))
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(r.EngagementScore, 'g', -1, 64))
		b.WriteByte('|')
		steps := make([]string, 0, len(r.StepCompletionRates))
		for k := range r.StepCompletionRates {
			steps = append(steps, k)
		}
		sort.Strings(steps)
		for _, k := range steps {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(r.StepCompletionRates[k], 'g', -1, 64))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}
