// Package dist provides closed-form approximations of the distribution
// functions the hypothesis tests rely on.
//
// These are intentionally approximate: the normal quantile is accurate to
// roughly 3 significant digits and the small-df Student-t and chi-square
// CDFs are moment-matched normal approximations. That is sufficient for
// directional significance decisions but NOT for regulatory-grade
// statistics. An exact drop-in replacement backed by gonum/stat/distuv is
// available via ExactProvider; see provider.go for the substitution point.
package dist

import (
	"math"
)

// Erf computes the error function using the Abramowitz-Stegun 7.1.26
// rational approximation (maximum absolute error ~1.5e-7).
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}

	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	t := 1.0 / (1.0 + p*x)
	y := 1.0 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)
	return sign * y
}

// NormalCDF is the standard normal CDF, exact up to the Erf approximation.
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}

// NormalQuantile is the inverse standard normal CDF via the
// Abramowitz-Stegun 26.2.23 rational approximation (absolute error < 4.5e-4,
// monotonic). Out-of-range p degrades to +/-Inf-free extremes.
func NormalQuantile(p float64) float64 {
	if p <= 0 {
		return -8 // beyond any practical significance threshold
	}
	if p >= 1 {
		return 8
	}
	if p == 0.5 {
		return 0
	}

	// Work in the lower tail, mirror for the upper
	lower := p < 0.5
	if !lower {
		p = 1 - p
	}

	const (
		c0 = 2.515517
		c1 = 0.802853
		c2 = 0.010328
		d1 = 1.432788
		d2 = 0.189269
		d3 = 0.001308
	)

	t := math.Sqrt(-2 * math.Log(p))
	z := t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
	if lower {
		return -z
	}
	return z
}

// TCDF approximates the Student-t CDF. For df >= 30 it delegates to the
// normal CDF; below that it uses a moment-matched normal scaling that stays
// strictly increasing in t for fixed df.
func TCDF(t, df float64) float64 {
	if df <= 0 {
		return 0.5
	}
	if df >= 30 {
		return NormalCDF(t)
	}
	// t / sqrt(1+t^2/(2df)) is strictly increasing in t, so the composition
	// with the monotone normal CDF preserves the ordering contract.
	z := t * (1 - 1/(4*df)) / math.Sqrt(1+t*t/(2*df))
	return NormalCDF(z)
}

// TQuantile approximates the Student-t quantile. For df >= 30 it is the
// normal quantile; below that a Cornish-Fisher style expansion widens the
// tails by a df-scaled correction.
func TQuantile(p, df float64) float64 {
	z := NormalQuantile(p)
	if df <= 0 || df >= 30 {
		return z
	}
	return z * (1 + (z*z+1)/(4*df))
}

// ChiSquareCDF approximates the chi-square CDF. Closed forms for df 1 and 2,
// Wilson-Hilferty cube-root normal approximation otherwise.
func ChiSquareCDF(x, df float64) float64 {
	if x <= 0 || df <= 0 {
		return 0
	}
	switch df {
	case 1:
		return Erf(math.Sqrt(x / 2))
	case 2:
		return 1 - math.Exp(-x/2)
	}
	// Wilson-Hilferty: (X/df)^(1/3) is approximately normal with
	// mean 1-2/(9df) and variance 2/(9df).
	v := 2 / (9 * df)
	z := (math.Cbrt(x/df) - (1 - v)) / math.Sqrt(v)
	return NormalCDF(z)
}
