package dist

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Provider is the substitution point for the distribution primitives. The
// engine defaults to the closed-form approximations in this package; a
// deployment that needs library-exact values swaps in ExactProvider without
// changing any test's public contract.
type Provider interface {
	NormalCDF(x float64) float64
	NormalQuantile(p float64) float64
	TCDF(t, df float64) float64
	TQuantile(p, df float64) float64
	ChiSquareCDF(x, df float64) float64
}

// ApproxProvider uses the package-level closed-form approximations.
type ApproxProvider struct{}

func (ApproxProvider) NormalCDF(x float64) float64        { return NormalCDF(x) }
func (ApproxProvider) NormalQuantile(p float64) float64   { return NormalQuantile(p) }
func (ApproxProvider) TCDF(t, df float64) float64         { return TCDF(t, df) }
func (ApproxProvider) TQuantile(p, df float64) float64    { return TQuantile(p, df) }
func (ApproxProvider) ChiSquareCDF(x, df float64) float64 { return ChiSquareCDF(x, df) }

// ExactProvider delegates to gonum's distuv implementations.
type ExactProvider struct{}

func (ExactProvider) NormalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func (ExactProvider) NormalQuantile(p float64) float64 {
	if p <= 0 {
		return -8
	}
	if p >= 1 {
		return 8
	}
	return distuv.UnitNormal.Quantile(p)
}

func (ExactProvider) TCDF(t, df float64) float64 {
	if df <= 0 {
		return 0.5
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(t)
}

func (ExactProvider) TQuantile(p, df float64) float64 {
	if df <= 0 || p <= 0 || p >= 1 {
		return ExactProvider{}.NormalQuantile(p)
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

func (ExactProvider) ChiSquareCDF(x, df float64) float64 {
	if x <= 0 || df <= 0 {
		return 0
	}
	return distuv.ChiSquared{K: df}.CDF(x)
}
