// Package hypothesis implements the significance tests the outcome analyzer
// is built on: Welch's t-test, Mann-Whitney U, Wilson proportion intervals,
// bootstrap and permutation resampling, and Fisher's combined probability.
//
// Every test is a total function over its documented domain. Inputs that a
// textbook treatment would reject (empty groups, zero variance) degrade to a
// neutral no-evidence result flagged through TestResult.Assumptions; callers
// never need an error path for routine low-sample cases.
package hypothesis

import (
	"math"
	"math/rand"

	"convsig/domain/outcome"
	"convsig/internal/dist"
)

// Config tunes the suite. Zero values fall back to defaults.
type Config struct {
	Alpha              float64 // significance level, default 0.05
	BootstrapSamples   int     // default 1000
	PermutationSamples int     // default 1000
	Seed               int64   // 0 means non-deterministic seeding
}

// Suite runs the hypothesis tests with shared configuration. Methods are
// safe for concurrent use: resampling tests construct their own generator
// per call.
type Suite struct {
	alpha              float64
	bootstrapSamples   int
	permutationSamples int
	seed               int64
	dist               dist.Provider
}

// NewSuite creates a test suite with the approximate distribution provider.
func NewSuite(cfg Config) *Suite {
	return NewSuiteWithProvider(cfg, dist.ApproxProvider{})
}

// NewSuiteWithProvider creates a test suite with an explicit distribution
// provider. This is the substitution point for exact (gonum-backed)
// distribution functions.
func NewSuiteWithProvider(cfg Config, p dist.Provider) *Suite {
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		cfg.Alpha = 0.05
	}
	if cfg.BootstrapSamples <= 0 {
		cfg.BootstrapSamples = 1000
	}
	if cfg.PermutationSamples <= 0 {
		cfg.PermutationSamples = 1000
	}
	return &Suite{
		alpha:              cfg.Alpha,
		bootstrapSamples:   cfg.BootstrapSamples,
		permutationSamples: cfg.PermutationSamples,
		seed:               cfg.Seed,
		dist:               p,
	}
}

// Alpha returns the configured significance level.
func (s *Suite) Alpha() float64 {
	return s.alpha
}

// rng returns a fresh generator so concurrent callers never share state.
func (s *Suite) rng() *rand.Rand {
	if s.seed != 0 {
		return rand.New(rand.NewSource(s.seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// neutralResult is the conservative no-evidence stand-in used when a test
// cannot run: zero statistic and effect, p-value 1.
func (s *Suite) neutralResult(testType outcome.TestType, n int, assumption string) outcome.TestResult {
	return outcome.TestResult{
		TestType:           testType,
		Statistic:          0,
		PValue:             1.0,
		EffectSize:         0,
		ConfidenceInterval: outcome.ConfidenceInterval{Lower: 0, Upper: 0, Level: 1 - s.alpha},
		SampleSize:         n,
		Assumptions:        []string{assumption},
	}
}

// clampP keeps approximation round-off inside the p-value contract.
func clampP(p float64) float64 {
	if math.IsNaN(p) {
		return 1.0
	}
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
