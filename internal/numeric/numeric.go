// Package numeric provides the scalar building blocks the hypothesis tests
// and the outcome analyzer are assembled from. All functions are total:
// degenerate inputs produce zeros, never NaN or panics.
package numeric

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Variance returns the sample variance (n-1 divisor), 0 for n < 2.
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	m := Mean(data)
	sumSq := 0.0
	for _, v := range data {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(data)-1)
}

// StdDev returns the sample standard deviation.
func StdDev(data []float64) float64 {
	return math.Sqrt(Variance(data))
}

// Regression holds a closed-form least-squares fit.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// LinearRegression fits y = slope*x + intercept by least squares.
// RSquared is 0 when the total sum of squares is 0 or the fit is undefined.
func LinearRegression(x, y []float64) Regression {
	n := len(x)
	if n < 2 || len(y) != n {
		return Regression{}
	}

	meanX := Mean(x)
	meanY := Mean(y)

	ssXY := 0.0
	ssXX := 0.0
	ssTot := 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssTot += dy * dy
	}
	if ssXX == 0 {
		return Regression{Intercept: meanY}
	}

	slope := ssXY / ssXX
	intercept := meanY - slope*meanX

	r2 := 0.0
	if ssTot > 0 {
		ssRes := 0.0
		for i := 0; i < n; i++ {
			resid := y[i] - (slope*x[i] + intercept)
			ssRes += resid * resid
		}
		r2 = 1 - ssRes/ssTot
		if r2 < 0 {
			r2 = 0
		}
	}

	return Regression{Slope: slope, Intercept: intercept, RSquared: r2}
}

// Ranks assigns 1-based ranks with average mid-ranks for ties, as required
// by the Mann-Whitney U statistic.
func Ranks(data []float64) []float64 {
	n := len(data)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	i := 0
	for i < n {
		j := i
		for j+1 < n && data[idx[j+1]] == data[idx[i]] {
			j++
		}
		// Average rank across the tie run [i..j]
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// PearsonCorrelation computes Pearson's r, skipping NaN/Inf pairs and
// returning 0 on a degenerate denominator.
func PearsonCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	n := 0.0
	sumX, sumY, sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0, 0.0, 0.0
	for i := 0; i < len(x); i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		n++
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}
	if n < 2 {
		return 0
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0
	}

	r := numerator / denominator
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	// Floating point can push |r| marginally past 1
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}

// PartialCorrelation computes the first-order partial correlation between x
// and y controlling for z: r_xy.z.
func PartialCorrelation(x, y, z []float64) float64 {
	rxy := PearsonCorrelation(x, y)
	rxz := PearsonCorrelation(x, z)
	ryz := PearsonCorrelation(y, z)

	denom := math.Sqrt((1 - rxz*rxz) * (1 - ryz*ryz))
	if denom == 0 {
		return 0
	}
	r := (rxy - rxz*ryz) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	}
	if r < -1 {
		r = -1
	}
	return r
}
