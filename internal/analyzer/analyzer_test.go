package analyzer

import (
	"context"
	"math"
	"testing"

	"convsig/domain/outcome"
)

// separatedGroups builds two clearly distinguishable outcome groups: the
// successful side converts with long, engaged sessions; the failed side
// bounces early.
func separatedGroups(n int) (successful, failed []outcome.OutcomeRecord) {
	for i := 0; i < n; i++ {
		jitter := float64(i%5) * 0.01
		successful = append(successful, outcome.OutcomeRecord{
			Converted:       true,
			DurationMs:      500 + 10*float64(i),
			EngagementScore: 0.8 + jitter,
			StepCompletionRates: map[string]float64{
				"landing":  1.0,
				"checkout": 0.9 + jitter,
			},
		})
		failed = append(failed, outcome.OutcomeRecord{
			Converted:       false,
			DurationMs:      150 + 10*float64(i),
			EngagementScore: 0.2 + jitter,
			StepCompletionRates: map[string]float64{
				"landing":  0.6 + jitter,
				"checkout": 0.1,
			},
		})
	}
	return successful, failed
}

func TestAnalyze_SeparatedGroupsRetainFactors(t *testing.T) {
	a := New(outcome.DefaultOptions())
	successful, failed := separatedGroups(20)

	res, err := a.Analyze(context.Background(), successful, failed)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.PrimaryFactors) == 0 {
		t.Fatal("expected retained factors for fully separated groups")
	}
	for _, f := range res.PrimaryFactors {
		if math.Abs(f.Strength) < 0.3 {
			t.Errorf("retained factor %q with |r| = %v below threshold", f.Factor, math.Abs(f.Strength))
		}
		if f.Confidence < 0 || f.Confidence > 1 {
			t.Errorf("factor %q confidence %v outside [0,1]", f.Factor, f.Confidence)
		}
	}
	// Strongest factor first.
	for i := 1; i < len(res.PrimaryFactors); i++ {
		prev := math.Abs(res.PrimaryFactors[i-1].Strength)
		cur := math.Abs(res.PrimaryFactors[i].Strength)
		if cur > prev+1e-12 {
			t.Errorf("factors out of order at %d: %v after %v", i, cur, prev)
		}
	}
	if res.SampleSize != 40 {
		t.Errorf("sample size = %d, want 40", res.SampleSize)
	}
}

func TestAnalyze_CausalityNeverExceedsCorrelation(t *testing.T) {
	a := New(outcome.DefaultOptions())
	successful, failed := separatedGroups(15)

	res, err := a.Analyze(context.Background(), successful, failed)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.CausalityIndicators) == 0 {
		t.Fatal("expected causality indicators for fully separated groups")
	}

	byFactor := make(map[string]outcome.CorrelationFactor)
	for _, f := range res.PrimaryFactors {
		byFactor[string(f.Factor)] = f
	}
	for _, ind := range res.CausalityIndicators {
		f, ok := byFactor[string(ind.Factor)]
		if !ok {
			t.Errorf("indicator %q has no retained factor", ind.Factor)
			continue
		}
		want := math.Abs(f.Strength) * causalityDiscount
		if math.Abs(ind.Strength-want) > 1e-12 {
			t.Errorf("indicator %q strength = %v, want discounted %v", ind.Factor, ind.Strength, want)
		}
		if ind.Strength > math.Abs(f.Strength) {
			t.Errorf("indicator %q strength %v exceeds correlation %v", ind.Factor, ind.Strength, math.Abs(f.Strength))
		}
		if ind.TemporalScore != temporalNeutral {
			t.Errorf("temporal score = %v, want %v", ind.TemporalScore, temporalNeutral)
		}
		wantDir := outcome.DirectionPositive
		if f.Strength < 0 {
			wantDir = outcome.DirectionNegative
		}
		if ind.Direction != wantDir {
			t.Errorf("indicator %q direction = %q, want %q", ind.Factor, ind.Direction, wantDir)
		}
	}
}

func TestAnalyze_RunsAndCorrectsAllDimensionTests(t *testing.T) {
	a := New(outcome.DefaultOptions())
	successful, failed := separatedGroups(12)

	res, err := a.Analyze(context.Background(), successful, failed)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.TestResults) != 5 {
		t.Fatalf("test results = %d, want one per metric dimension plus the conversion proportion", len(res.TestResults))
	}
	if res.TestResults[4].TestType != outcome.TestWilson {
		t.Errorf("final test = %q, want the Wilson proportion test", res.TestResults[4].TestType)
	}
	if res.Correction.Method != "benjamini_hochberg" {
		t.Errorf("correction method = %q", res.Correction.Method)
	}
	if len(res.Correction.AdjustedPValues) != 5 {
		t.Errorf("adjusted p-values = %d, want 5", len(res.Correction.AdjustedPValues))
	}
	if res.StatisticalEvidence.PValue >= 0.05 {
		t.Errorf("combined evidence p = %v, want significant", res.StatisticalEvidence.PValue)
	}
	if res.ConfidenceScore <= 0 || res.ConfidenceScore > 1 {
		t.Errorf("confidence score = %v outside (0,1]", res.ConfidenceScore)
	}
}

func TestAnalyze_InsufficientDataDegradesWithoutError(t *testing.T) {
	a := New(outcome.DefaultOptions())
	successful, _ := separatedGroups(1)

	res, err := a.Analyze(context.Background(), successful, nil)
	if err != nil {
		t.Fatalf("Analyze should degrade, not fail: %v", err)
	}
	if res.StatisticalEvidence.PValue != 1.0 {
		t.Errorf("evidence p = %v, want 1.0", res.StatisticalEvidence.PValue)
	}
	if len(res.PrimaryFactors) != 0 || len(res.CausalityIndicators) != 0 {
		t.Errorf("expected no factors or indicators, got %d / %d",
			len(res.PrimaryFactors), len(res.CausalityIndicators))
	}
	if res.ConfidenceScore != 0 {
		t.Errorf("confidence = %v, want 0", res.ConfidenceScore)
	}
	if res.SampleSize != 1 {
		t.Errorf("sample size = %d, want 1", res.SampleSize)
	}
}

func TestAnalyze_IndistinguishableGroups(t *testing.T) {
	a := New(outcome.DefaultOptions())

	var group []outcome.OutcomeRecord
	for i := 0; i < 10; i++ {
		group = append(group, outcome.OutcomeRecord{
			Converted:       i%2 == 0,
			DurationMs:      300 + 20*float64(i),
			EngagementScore: 0.4 + 0.05*float64(i%4),
			StepCompletionRates: map[string]float64{
				"landing": 0.5 + 0.02*float64(i%3),
			},
		})
	}

	res, err := a.Analyze(context.Background(), group, group)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(res.PrimaryFactors) != 0 {
		t.Errorf("identical groups retained %d factors", len(res.PrimaryFactors))
	}
	if res.StatisticalEvidence.PValue != 1.0 {
		t.Errorf("evidence p = %v, want 1.0 for no retained factors", res.StatisticalEvidence.PValue)
	}
	if res.ConfidenceScore != 0 {
		t.Errorf("confidence = %v, want 0", res.ConfidenceScore)
	}
}

func TestConfidenceFromP(t *testing.T) {
	cases := []struct {
		p        float64
		min, max float64
	}{
		{1.0, 0, 0},
		{0.001, 0.99, 0.99},
		{0.05, 0.3, 0.6},
		{0.5, 0.0, 0.2},
	}
	for _, tc := range cases {
		got := confidenceFromP(tc.p)
		if got < tc.min || got > tc.max {
			t.Errorf("confidenceFromP(%v) = %v, want within [%v, %v]", tc.p, got, tc.min, tc.max)
		}
	}
}
