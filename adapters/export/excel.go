// Package export writes analysis results into workbook form for the
// reporting collaborator.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"convsig/domain/core"
	"convsig/domain/outcome"
	"convsig/internal/errors"
	"convsig/internal/numeric"
)

const (
	sheetSummary = "Summary"
	sheetFactors = "Factors"
	sheetTests   = "Tests"
	sheetGroups  = "Groups"
)

// WriteWorkbook renders an analysis result as an xlsx workbook, including
// descriptive statistics of the input groups.
func WriteWorkbook(w io.Writer, result outcome.OutcomeAnalysisResult, successful, failed []outcome.OutcomeRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetSummary)
	writeSummary(f, result)

	if _, err := f.NewSheet(sheetFactors); err != nil {
		return errors.Wrap(err, "creating factors sheet")
	}
	writeFactors(f, result)

	if _, err := f.NewSheet(sheetTests); err != nil {
		return errors.Wrap(err, "creating tests sheet")
	}
	writeTests(f, result)

	if _, err := f.NewSheet(sheetGroups); err != nil {
		return errors.Wrap(err, "creating groups sheet")
	}
	writeGroups(f, successful, failed)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func writeSummary(f *excelize.File, r outcome.OutcomeAnalysisResult) {
	rows := [][]interface{}{
		{"Analysis ID", r.AnalysisID.String()},
		{"Sample size", r.SampleSize},
		{"Confidence score", r.ConfidenceScore},
		{"Combined p-value", r.StatisticalEvidence.PValue},
		{"Mean correlation", r.StatisticalEvidence.CorrelationCoefficient},
		{"Partial correlation", r.StatisticalEvidence.PartialCorrelation},
		{"R squared", r.StatisticalEvidence.RSquared},
		{"Mean effect size", r.StatisticalEvidence.EffectSize},
		{"Dose-response evidence", r.StatisticalEvidence.DoseResponseEvidence},
		{"Processing time", r.ProcessingTime.String()},
		{"Cache hit", r.CacheHit},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		_ = f.SetSheetRow(sheetSummary, cell, &row)
	}
}

func writeFactors(f *excelize.File, r outcome.OutcomeAnalysisResult) {
	header := []interface{}{"Factor", "Strength", "Confidence", "p-value", "Causality strength", "Direction"}
	_ = f.SetSheetRow(sheetFactors, "A1", &header)

	causality := make(map[string]outcome.CausalityIndicator, len(r.CausalityIndicators))
	for _, ind := range r.CausalityIndicators {
		causality[ind.Factor.String()] = ind
	}

	for i, factor := range r.PrimaryFactors {
		row := []interface{}{
			factor.Factor.String(),
			factor.Strength,
			factor.Confidence,
			factor.Significance,
		}
		if ind, ok := causality[factor.Factor.String()]; ok {
			row = append(row, ind.Strength, string(ind.Direction))
		} else {
			row = append(row, "", "")
		}
		_ = f.SetSheetRow(sheetFactors, fmt.Sprintf("A%d", i+2), &row)
	}
}

func writeTests(f *excelize.File, r outcome.OutcomeAnalysisResult) {
	header := []interface{}{"Test", "Statistic", "p-value", "Adjusted p", "Effect size", "CI lower", "CI upper"}
	_ = f.SetSheetRow(sheetTests, "A1", &header)

	for i, t := range r.TestResults {
		row := []interface{}{
			string(t.TestType),
			t.Statistic,
			t.PValue,
		}
		if i < len(r.Correction.AdjustedPValues) {
			row = append(row, r.Correction.AdjustedPValues[i])
		} else {
			row = append(row, "")
		}
		row = append(row, t.EffectSize, t.ConfidenceInterval.Lower, t.ConfidenceInterval.Upper)
		_ = f.SetSheetRow(sheetTests, fmt.Sprintf("A%d", i+2), &row)
	}
}

// metricSample is one labelled per-metric sample of an input group.
type metricSample struct {
	metric string
	sample outcome.Sample
}

// groupSamples flattens the two input groups into labelled per-metric
// samples for the descriptive sheet.
func groupSamples(successful, failed []outcome.OutcomeRecord) []metricSample {
	samples := make([]metricSample, 0, 6)
	for _, group := range []struct {
		label   core.GroupLabel
		records []outcome.OutcomeRecord
	}{
		{"successful", successful},
		{"failed", failed},
	} {
		durations := make([]float64, len(group.records))
		engagement := make([]float64, len(group.records))
		completion := make([]float64, len(group.records))
		for i, r := range group.records {
			durations[i] = r.DurationMs
			engagement[i] = r.EngagementScore
			completion[i] = r.CompletionRate()
		}
		samples = append(samples,
			metricSample{"duration_ms", outcome.Sample{Label: group.label, Values: durations}},
			metricSample{"engagement_score", outcome.Sample{Label: group.label, Values: engagement}},
			metricSample{"completion_rate", outcome.Sample{Label: group.label, Values: completion}},
		)
	}
	return samples
}

func writeGroups(f *excelize.File, successful, failed []outcome.OutcomeRecord) {
	header := []interface{}{"Group", "Metric", "Count", "Mean", "Std dev", "Min", "Max", "Median", "Q25", "Q75"}
	_ = f.SetSheetRow(sheetGroups, "A1", &header)

	for i, ms := range groupSamples(successful, failed) {
		s := numeric.Summarize(ms.sample.Values)
		cells := []interface{}{
			ms.sample.Label.String(), ms.metric, s.Count, s.Mean, s.StdDev,
			s.Min, s.Max, s.Median, s.Q25, s.Q75,
		}
		_ = f.SetSheetRow(sheetGroups, fmt.Sprintf("A%d", i+2), &cells)
	}
}
