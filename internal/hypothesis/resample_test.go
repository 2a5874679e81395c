package hypothesis

import (
	"math"
	"testing"

	"convsig/internal/numeric"
)

func TestBootstrapCI_BoundsBracketTheMean(t *testing.T) {
	s := newTestSuite()
	data := []float64{4, 5, 5, 6, 6, 6, 7, 7, 8, 9}

	ci := s.BootstrapCI(data, numeric.Mean)
	if ci.Lower > ci.Upper {
		t.Fatalf("lower %v > upper %v", ci.Lower, ci.Upper)
	}
	mean := numeric.Mean(data)
	if ci.Lower > mean || ci.Upper < mean {
		t.Errorf("interval [%v, %v] should bracket the sample mean %v", ci.Lower, ci.Upper, mean)
	}
	if ci.Level != 0.95 {
		t.Errorf("level = %v, want 0.95", ci.Level)
	}
}

func TestBootstrapCI_DeterministicWithSeed(t *testing.T) {
	s := newTestSuite()
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	first := s.BootstrapCI(data, numeric.Mean)
	second := s.BootstrapCI(data, numeric.Mean)
	if first.Lower != second.Lower || first.Upper != second.Upper {
		t.Fatalf("seeded runs diverge: [%v, %v] vs [%v, %v]",
			first.Lower, first.Upper, second.Lower, second.Upper)
	}
}

func TestBootstrapCI_TinySample(t *testing.T) {
	s := newTestSuite()
	ci := s.BootstrapCI([]float64{42}, numeric.Mean)
	if ci.Lower != 0 || ci.Upper != 0 {
		t.Fatalf("interval for n=1 = [%v, %v], want [0, 0]", ci.Lower, ci.Upper)
	}
}

func TestBootstrapCI_NilStatisticDefaultsToMean(t *testing.T) {
	s := newTestSuite()
	data := []float64{10, 10, 10, 10, 10}
	ci := s.BootstrapCI(data, nil)
	if ci.Lower != 10 || ci.Upper != 10 {
		t.Fatalf("constant data should bootstrap to a point interval, got [%v, %v]", ci.Lower, ci.Upper)
	}
}

func TestPermutationTest_StrongSeparation(t *testing.T) {
	s := newTestSuite()
	a := []float64{10, 12, 9, 11, 13}
	b := []float64{20, 22, 19, 21, 23}

	res := s.PermutationTest(a, b, nil)
	if res.PValue >= 0.05 {
		t.Errorf("p = %v, want significant for fully separated groups", res.PValue)
	}
	if math.Abs(res.Statistic-(-10)) > 1e-9 {
		t.Errorf("statistic = %v, want the observed mean difference -10", res.Statistic)
	}
}

func TestPermutationTest_SwapInvariantPValue(t *testing.T) {
	s := newTestSuite()
	a := []float64{3, 5, 4, 6, 5}
	b := []float64{7, 6, 8, 7, 9}

	// Equal group sizes: the null distribution of |mean difference| is
	// identical either way round, so the p-values agree up to Monte Carlo
	// noise.
	forward := s.PermutationTest(a, b, nil)
	reverse := s.PermutationTest(b, a, nil)
	if math.Abs(forward.PValue-reverse.PValue) > 0.05 {
		t.Fatalf("p-values diverge under swap: %v vs %v", forward.PValue, reverse.PValue)
	}
	if forward.Statistic != -reverse.Statistic {
		t.Errorf("statistics should negate under swap: %v vs %v", forward.Statistic, reverse.Statistic)
	}
}

func TestPermutationTest_NoDifference(t *testing.T) {
	s := newTestSuite()
	a := []float64{5, 6, 7, 8, 9}
	b := []float64{5, 6, 7, 8, 9}

	res := s.PermutationTest(a, b, nil)
	if res.PValue < 0.5 {
		t.Errorf("p = %v, want large for identical groups", res.PValue)
	}
}

func TestPermutationTest_InsufficientSample(t *testing.T) {
	s := newTestSuite()
	res := s.PermutationTest([]float64{1}, []float64{2, 3}, nil)
	if !res.Degraded() || res.PValue != 1.0 {
		t.Fatalf("expected neutral result for undersized group, got %+v", res)
	}
}
