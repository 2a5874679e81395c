package correction

import (
	"math"
	"testing"
)

func TestBonferroni_KnownVector(t *testing.T) {
	ps := []float64{0.01, 0.04, 0.03, 0.20}
	c := Bonferroni(ps, 0.05)

	want := []float64{0.04, 0.16, 0.12, 0.80}
	for i, q := range c.AdjustedPValues {
		if math.Abs(q-want[i]) > 1e-12 {
			t.Errorf("adjusted[%d] = %v, want %v", i, q, want[i])
		}
	}
	if c.SignificantCount != 1 {
		t.Errorf("significant = %d, want 1", c.SignificantCount)
	}
	if math.Abs(c.AdjustedAlpha-0.0125) > 1e-12 {
		t.Errorf("adjusted alpha = %v, want 0.0125", c.AdjustedAlpha)
	}
	if c.Method != MethodBonferroni {
		t.Errorf("method = %q", c.Method)
	}
}

func TestBonferroni_NeverDecreasesPValues(t *testing.T) {
	ps := []float64{0.001, 0.2, 0.5, 0.049, 0.9}
	c := Bonferroni(ps, 0.05)
	for i, q := range c.AdjustedPValues {
		if q < ps[i] {
			t.Errorf("adjusted[%d] = %v < original %v", i, q, ps[i])
		}
		if q > 1 {
			t.Errorf("adjusted[%d] = %v exceeds 1", i, q)
		}
	}
}

func TestBonferroni_InvalidEntriesBecomeOne(t *testing.T) {
	c := Bonferroni([]float64{math.NaN(), -0.1, 1.5, 0.02}, 0.05)
	for i := 0; i < 3; i++ {
		if c.AdjustedPValues[i] != 1.0 {
			t.Errorf("adjusted[%d] = %v, want 1.0 for invalid input", i, c.AdjustedPValues[i])
		}
	}
	if c.AdjustedPValues[3] != 0.08 {
		t.Errorf("adjusted[3] = %v, want 0.08", c.AdjustedPValues[3])
	}
}

func TestBenjaminiHochberg_KnownVector(t *testing.T) {
	ps := []float64{0.01, 0.04, 0.03, 0.20}
	c := BenjaminiHochberg(ps, 0.05)

	// Ranked: 0.01, 0.03, 0.04, 0.20 -> q = 0.04, 0.06, 0.0533, 0.20;
	// the backward scan pulls 0.06 down to 0.0533.
	want := []float64{0.04, 0.16 / 3, 0.16 / 3, 0.20}
	for i, q := range c.AdjustedPValues {
		if math.Abs(q-want[i]) > 1e-12 {
			t.Errorf("adjusted[%d] = %v, want %v", i, q, want[i])
		}
	}
	if c.SignificantCount != 1 {
		t.Errorf("significant = %d, want 1", c.SignificantCount)
	}
}

func TestBenjaminiHochberg_MonotoneInRankOrder(t *testing.T) {
	ps := []float64{0.002, 0.5, 0.013, 0.04, 0.9, 0.013, 0.07}
	c := BenjaminiHochberg(ps, 0.05)

	// Smaller original p-values never end up with larger adjusted values.
	for i := range ps {
		for j := range ps {
			if ps[i] < ps[j] && c.AdjustedPValues[i] > c.AdjustedPValues[j]+1e-12 {
				t.Errorf("q(%v) = %v > q(%v) = %v breaks monotonicity",
					ps[i], c.AdjustedPValues[i], ps[j], c.AdjustedPValues[j])
			}
		}
	}
}

func TestBenjaminiHochberg_LessConservativeThanBonferroni(t *testing.T) {
	ps := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	bh := BenjaminiHochberg(ps, 0.05)
	bf := Bonferroni(ps, 0.05)

	for i := range ps {
		if bh.AdjustedPValues[i] > bf.AdjustedPValues[i]+1e-12 {
			t.Errorf("BH adjusted[%d] = %v exceeds Bonferroni %v",
				i, bh.AdjustedPValues[i], bf.AdjustedPValues[i])
		}
	}
	if bh.SignificantCount < bf.SignificantCount {
		t.Errorf("BH found %d discoveries, Bonferroni %d", bh.SignificantCount, bf.SignificantCount)
	}
}

func TestBenjaminiHochberg_EmptyInput(t *testing.T) {
	c := BenjaminiHochberg(nil, 0.05)
	if len(c.AdjustedPValues) != 0 || c.SignificantCount != 0 {
		t.Fatalf("unexpected result for empty input: %+v", c)
	}
}
