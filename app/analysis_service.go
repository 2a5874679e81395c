// Package app orchestrates outcome analyses: a content-addressed result
// cache with TTL eviction, a bounded concurrency gate with FIFO overflow
// queueing, and chunked batch execution.
package app

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"convsig/domain/core"
	"convsig/domain/outcome"
	"convsig/internal"
	"convsig/internal/errors"
	"convsig/ports"
)

// AnalysisService is an explicitly constructed engine instance owning its
// own cache and concurrency slots. Callers hold a reference; there is no
// process-wide singleton.
type AnalysisService struct {
	analyzer ports.OutcomeAnalyzer
	cache    *ResultCache

	// slots bounds simultaneously running analyses. semaphore.Weighted
	// services waiters in FIFO order, which is exactly the queueing
	// discipline required for overflow requests. The wait honors the
	// caller's context; no queue-depth bound is imposed.
	slots *semaphore.Weighted

	opts outcome.Options
}

// NewAnalysisService wires an orchestrator around an analyzer.
func NewAnalysisService(an ports.OutcomeAnalyzer, opts outcome.Options) *AnalysisService {
	opts = opts.Normalized()
	return &AnalysisService{
		analyzer: an,
		cache:    NewResultCache(opts.CacheTTL),
		slots:    semaphore.NewWeighted(int64(opts.MaxConcurrentAnalyses)),
		opts:     opts,
	}
}

// Analyze serves one analysis request. Identical input groups within the TTL
// window return the cached result with CacheHit set; otherwise the request
// runs once a concurrency slot frees up.
func (s *AnalysisService) Analyze(ctx context.Context, successful, failed []outcome.OutcomeRecord) (outcome.OutcomeAnalysisResult, error) {
	key := outcome.RequestKey(successful, failed)

	if res, ok := s.cache.Get(key); ok {
		res.CacheHit = true
		return res, nil
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return outcome.OutcomeAnalysisResult{}, errors.Wrap(core.AnalysisCancelled(err), "waiting for analysis slot")
	}
	defer s.slots.Release(1)

	res, err := s.analyzer.Analyze(ctx, successful, failed)
	if err != nil {
		return outcome.OutcomeAnalysisResult{}, errors.Wrap(err, "analysis failed")
	}

	res.CacheHit = false
	s.cache.Put(key, res)
	return res, nil
}

// AnalyzeBatch processes the requests in fixed-size chunks. Requests within
// a chunk run concurrently (each still subject to the global slot gate);
// the scheduler is yielded between chunks so host I/O is not starved.
// Results are returned in request order.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, requests []outcome.AnalysisRequest) ([]outcome.OutcomeAnalysisResult, error) {
	results := make([]outcome.OutcomeAnalysisResult, len(requests))
	chunk := s.opts.BatchChunkSize

	for start := 0; start < len(requests); start += chunk {
		end := start + chunk
		if end > len(requests) {
			end = len(requests)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				res, err := s.Analyze(gctx, requests[i].Successful, requests[i].Failed)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.Wrapf(err, "batch chunk %d-%d failed", start, end-1)
		}

		runtime.Gosched()
	}
	return results, nil
}

// InvalidateCache drops every cached analysis result.
func (s *AnalysisService) InvalidateCache() {
	s.cache.Purge()
	internal.DefaultLogger.Info("analysis cache purged")
}

// CacheStats exposes cache effectiveness counters.
func (s *AnalysisService) CacheStats() CacheStats {
	return s.cache.Stats()
}

// Options returns the normalized engine options in effect.
func (s *AnalysisService) Options() outcome.Options {
	return s.opts
}

var _ ports.AnalysisOrchestrator = (*AnalysisService)(nil)
