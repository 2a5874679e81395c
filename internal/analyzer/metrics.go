package analyzer

import (
	"convsig/domain/core"
	"convsig/domain/outcome"
)

// Metric dimension keys produced by the analyzer.
const (
	MetricConversion core.MetricKey = "conversion"
	MetricDuration   core.MetricKey = "session_duration"
	MetricEngagement core.MetricKey = "engagement_score"
	MetricCompletion core.MetricKey = "completion_rate"
)

// metricDimension extracts one scalar dimension from an outcome record.
type metricDimension struct {
	key     core.MetricKey
	extract func(outcome.OutcomeRecord) float64
}

// dimensions lists the analyzed metric dimensions in reporting order.
func dimensions() []metricDimension {
	return []metricDimension{
		{key: MetricConversion, extract: func(r outcome.OutcomeRecord) float64 {
			if r.Converted {
				return 1
			}
			return 0
		}},
		{key: MetricDuration, extract: func(r outcome.OutcomeRecord) float64 {
			return r.DurationMs
		}},
		{key: MetricEngagement, extract: func(r outcome.OutcomeRecord) float64 {
			return r.EngagementScore
		}},
		{key: MetricCompletion, extract: func(r outcome.OutcomeRecord) float64 {
			return r.CompletionRate()
		}},
	}
}

// extractValues pulls one dimension out of a group of records.
func extractValues(records []outcome.OutcomeRecord, dim metricDimension) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = dim.extract(r)
	}
	return values
}
