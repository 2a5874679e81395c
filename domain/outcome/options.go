package outcome

import "time"

// Options is the plain configuration object recognized by the engine.
// Zero-valued fields are replaced by defaults via Normalized.
type Options struct {
	AlphaLevel            float64       `json:"alpha_level"`
	CorrelationThreshold  float64       `json:"correlation_threshold"`
	CausalityThreshold    float64       `json:"causality_threshold"`
	BootstrapSamples      int           `json:"bootstrap_samples"`
	PermutationSamples    int           `json:"permutation_samples"`
	CacheTTL              time.Duration `json:"cache_ttl"`
	MaxConcurrentAnalyses int           `json:"max_concurrent_analyses"`
	BatchChunkSize        int           `json:"batch_chunk_size"`
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		AlphaLevel:            0.05,
		CorrelationThreshold:  0.3,
		CausalityThreshold:    0.6,
		BootstrapSamples:      1000,
		PermutationSamples:    1000,
		CacheTTL:              5 * time.Minute,
		MaxConcurrentAnalyses: 3,
		BatchChunkSize:        5,
	}
}

// Normalized fills unset fields with defaults and clamps nonsensical values.
func (o Options) Normalized() Options {
	d := DefaultOptions()
	if o.AlphaLevel <= 0 || o.AlphaLevel >= 1 {
		o.AlphaLevel = d.AlphaLevel
	}
	if o.CorrelationThreshold <= 0 || o.CorrelationThreshold > 1 {
		o.CorrelationThreshold = d.CorrelationThreshold
	}
	if o.CausalityThreshold <= 0 || o.CausalityThreshold > 1 {
		o.CausalityThreshold = d.CausalityThreshold
	}
	if o.BootstrapSamples <= 0 {
		o.BootstrapSamples = d.BootstrapSamples
	}
	if o.PermutationSamples <= 0 {
		o.PermutationSamples = d.PermutationSamples
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = d.CacheTTL
	}
	if o.MaxConcurrentAnalyses <= 0 {
		o.MaxConcurrentAnalyses = d.MaxConcurrentAnalyses
	}
	if o.BatchChunkSize <= 0 {
		o.BatchChunkSize = d.BatchChunkSize
	}
	return o
}
