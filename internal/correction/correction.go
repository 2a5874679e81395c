// Package correction implements family-wise and false-discovery-rate
// procedures over a vector of p-values.
package correction

import (
	"math"
	"sort"

	"convsig/domain/outcome"
)

// Method names reported in MultipleTestingCorrection.
const (
	MethodBonferroni        = "bonferroni"
	MethodBenjaminiHochberg = "benjamini_hochberg"
)

// Bonferroni applies the family-wise correction adjusted = min(1, p*m).
// Invalid p-values (NaN or outside [0,1]) are carried through as 1.0 rather
// than propagated. Adjusted values are always >= the originals.
func Bonferroni(pValues []float64, alpha float64) outcome.MultipleTestingCorrection {
	m := len(pValues)
	adjusted := make([]float64, m)
	significant := 0

	for i, p := range pValues {
		if !validP(p) {
			adjusted[i] = 1.0
			continue
		}
		q := p * float64(m)
		if q > 1 {
			q = 1
		}
		adjusted[i] = q
		if q < alpha {
			significant++
		}
	}

	adjustedAlpha := alpha
	if m > 0 {
		adjustedAlpha = alpha / float64(m)
	}

	return outcome.MultipleTestingCorrection{
		Method:           MethodBonferroni,
		OriginalAlpha:    alpha,
		AdjustedAlpha:    adjustedAlpha,
		OriginalPValues:  clonePs(pValues),
		AdjustedPValues:  adjusted,
		SignificantCount: significant,
	}
}

// BenjaminiHochberg applies the step-up false-discovery-rate procedure.
// P-values are ranked ascending, adjusted as q_i = p_i * m / rank_i, and
// monotonicity is enforced by scanning from the largest p-value down
// (q_i = min(q_i, q_{i+1})). Adjusted values are reported in input order.
func BenjaminiHochberg(pValues []float64, fdr float64) outcome.MultipleTestingCorrection {
	m := len(pValues)
	adjusted := make([]float64, m)

	type ranked struct {
		index int
		p     float64
	}
	order := make([]ranked, 0, m)
	for i, p := range pValues {
		if !validP(p) {
			adjusted[i] = 1.0
			continue
		}
		order = append(order, ranked{index: i, p: p})
	}
	sort.Slice(order, func(a, b int) bool { return order[a].p < order[b].p })

	k := len(order)
	qs := make([]float64, k)
	for i, r := range order {
		q := r.p * float64(k) / float64(i+1)
		if q > 1 {
			q = 1
		}
		qs[i] = q
	}
	// Step-up monotonicity: a smaller p-value can never have a larger q
	for i := k - 2; i >= 0; i-- {
		if qs[i] > qs[i+1] {
			qs[i] = qs[i+1]
		}
	}

	significant := 0
	for i, r := range order {
		adjusted[r.index] = qs[i]
		if qs[i] < fdr {
			significant++
		}
	}

	return outcome.MultipleTestingCorrection{
		Method:           MethodBenjaminiHochberg,
		OriginalAlpha:    fdr,
		AdjustedAlpha:    fdr,
		OriginalPValues:  clonePs(pValues),
		AdjustedPValues:  adjusted,
		SignificantCount: significant,
	}
}

func validP(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

func clonePs(ps []float64) []float64 {
	out := make([]float64, len(ps))
	copy(out, ps)
	return out
}
