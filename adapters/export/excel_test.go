package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"convsig/domain/core"
	"convsig/domain/outcome"
)

func sampleResult() outcome.OutcomeAnalysisResult {
	return outcome.OutcomeAnalysisResult{
		AnalysisID: core.NewAnalysisID(),
		PrimaryFactors: []outcome.CorrelationFactor{
			{Factor: "engagement_score", Strength: 0.9, Confidence: 0.95, Significance: 0.001},
			{Factor: "session_duration", Strength: 0.4, Confidence: 0.5, Significance: 0.04},
		},
		CausalityIndicators: []outcome.CausalityIndicator{
			{Factor: "engagement_score", Strength: 0.72, Direction: outcome.DirectionPositive},
		},
		TestResults: []outcome.TestResult{
			{TestType: outcome.TestWelchT, Statistic: -4.2, PValue: 0.002, EffectSize: -1.1},
		},
		Correction: outcome.MultipleTestingCorrection{
			Method:          "benjamini_hochberg",
			AdjustedPValues: []float64{0.008},
		},
		SampleSize: 6,
	}
}

func sampleGroups() (successful, failed []outcome.OutcomeRecord) {
	successful = []outcome.OutcomeRecord{
		{Converted: true, DurationMs: 500, EngagementScore: 0.9},
		{Converted: true, DurationMs: 520, EngagementScore: 0.8},
	}
	failed = []outcome.OutcomeRecord{
		{Converted: false, DurationMs: 120, EngagementScore: 0.2},
		{Converted: false, DurationMs: 140, EngagementScore: 0.1},
	}
	return successful, failed
}

func TestWriteWorkbook_SheetLayout(t *testing.T) {
	successful, failed := sampleGroups()

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sampleResult(), successful, failed); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Factors", "Tests", "Groups"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	// Groups: header plus one row per group and metric dimension.
	rows, err := f.GetRows("Groups")
	if err != nil {
		t.Fatalf("reading Groups: %v", err)
	}
	if len(rows) != 7 {
		t.Errorf("Groups rows = %d, want header + 6 samples", len(rows))
	}
	if got, _ := f.GetCellValue("Groups", "A2"); got != "successful" {
		t.Errorf("Groups A2 = %q, want the group label", got)
	}
	if got, _ := f.GetCellValue("Groups", "B5"); got != "duration_ms" {
		t.Errorf("Groups B5 = %q, want duration_ms", got)
	}
}

func TestWriteWorkbook_FactorRowsAlwaysFullWidth(t *testing.T) {
	successful, failed := sampleGroups()

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sampleResult(), successful, failed); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	// Row 2 has a causality indicator, row 3 does not; both fill all six
	// header columns, the latter with empty padding cells.
	if got, _ := f.GetCellValue("Factors", "F2"); got != "positive" {
		t.Errorf("Factors F2 = %q, want the indicator direction", got)
	}
	if got, _ := f.GetCellValue("Factors", "A3"); got != "session_duration" {
		t.Errorf("Factors A3 = %q, want the second factor", got)
	}
	for _, cell := range []string{"E3", "F3"} {
		if got, _ := f.GetCellValue("Factors", cell); got != "" {
			t.Errorf("Factors %s = %q, want an empty padding cell", cell, got)
		}
	}
}
