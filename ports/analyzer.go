package ports

import (
	"context"

	"convsig/domain/outcome"
)

// OutcomeAnalyzer computes a correlation analysis between two outcome
// groups. Implementations must be safe for concurrent use; the orchestrator
// fans analyses out across goroutines.
type OutcomeAnalyzer interface {
	// Analyze correlates the successful group against the failed group.
	// Low-sample inputs degrade to a no-evidence result; only
	// infrastructure failures surface as errors.
	Analyze(ctx context.Context, successful, failed []outcome.OutcomeRecord) (outcome.OutcomeAnalysisResult, error)
}

// AnalysisOrchestrator fronts the analyzer with caching, concurrency
// bounding, and batch execution.
type AnalysisOrchestrator interface {
	// Analyze deduplicates identical requests through the content-addressed
	// cache and bounds concurrently running analyses.
	Analyze(ctx context.Context, successful, failed []outcome.OutcomeRecord) (outcome.OutcomeAnalysisResult, error)

	// AnalyzeBatch processes requests in fixed-size chunks, yielding between
	// chunks so host I/O is not starved.
	AnalyzeBatch(ctx context.Context, requests []outcome.AnalysisRequest) ([]outcome.OutcomeAnalysisResult, error)

	// InvalidateCache drops every cached analysis result.
	InvalidateCache()
}
