package app

import (
	"testing"
	"time"

	"convsig/domain/core"
	"convsig/domain/outcome"
)

func TestResultCache_PutGet(t *testing.T) {
	c := NewResultCache(time.Minute)
	key := core.ComputeRequestKey("a", "b")

	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	stored := outcome.OutcomeAnalysisResult{AnalysisID: core.NewAnalysisID(), SampleSize: 10}
	c.Put(key, stored)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.AnalysisID != stored.AnalysisID || got.SampleSize != 10 {
		t.Errorf("got %+v, want the stored result", got)
	}
}

func TestResultCache_TTLExpiry(t *testing.T) {
	c := NewResultCache(20 * time.Millisecond)
	key := core.ComputeRequestKey("expiring")

	c.Put(key, outcome.OutcomeAnalysisResult{SampleSize: 1})
	if _, ok := c.Get(key); !ok {
		t.Fatal("expected hit before TTL")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
}

func TestResultCache_StrictExpiryOnRead(t *testing.T) {
	c := NewResultCache(time.Minute)
	key := core.ComputeRequestKey("stale")

	// Even while the LRU still holds the entry, a result computed at least
	// one TTL ago is stale on read.
	c.Put(key, outcome.OutcomeAnalysisResult{
		SampleSize: 1,
		ComputedAt: core.NewTimestamp(time.Now().Add(-2 * time.Minute)),
	})
	if _, ok := c.Get(key); ok {
		t.Fatal("expected miss for a result older than the TTL")
	}
	if c.Stats().Entries != 0 {
		t.Error("stale entry should be dropped on read")
	}
}

func TestResultCache_InvalidateAndPurge(t *testing.T) {
	c := NewResultCache(time.Minute)
	k1 := core.ComputeRequestKey("one")
	k2 := core.ComputeRequestKey("two")
	c.Put(k1, outcome.OutcomeAnalysisResult{})
	c.Put(k2, outcome.OutcomeAnalysisResult{})

	c.Invalidate(k1)
	if _, ok := c.Get(k1); ok {
		t.Error("expected miss after Invalidate")
	}
	if _, ok := c.Get(k2); !ok {
		t.Error("untouched entry should survive Invalidate")
	}

	c.Purge()
	if _, ok := c.Get(k2); ok {
		t.Error("expected miss after Purge")
	}
}

func TestResultCache_Stats(t *testing.T) {
	c := NewResultCache(time.Minute)
	key := core.ComputeRequestKey("counted")

	c.Get(key) // miss
	c.Put(key, outcome.OutcomeAnalysisResult{})
	c.Get(key) // hit
	c.Get(key) // hit

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", stats.Hits, stats.Misses)
	}
	if stats.Entries != 1 {
		t.Errorf("entries = %d, want 1", stats.Entries)
	}
	if stats.HitRate < 0.66 || stats.HitRate > 0.67 {
		t.Errorf("hit rate = %v, want ~2/3", stats.HitRate)
	}
}
