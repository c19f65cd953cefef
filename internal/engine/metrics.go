package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PortfolioScrapes atomic.Int64
	ResumeParses     atomic.Int64
	ResumeErrors     atomic.Int64
	GitHubFetches    atomic.Int64
	InstagramScrapes atomic.Int64
	Reconciliations  atomic.Int64
	FetchRequests    atomic.Int64
	FetchErrors      atomic.Int64
	SnapshotWrites   atomic.Int64
}

func IncrPortfolioScrapes() { metrics.PortfolioScrapes.Add(1) }
func IncrResumeParses()     { metrics.ResumeParses.Add(1) }
func IncrResumeErrors()     { metrics.ResumeErrors.Add(1) }
func IncrGitHubFetches()    { metrics.GitHubFetches.Add(1) }
func IncrInstagramScrapes() { metrics.InstagramScrapes.Add(1) }
func IncrReconciliations()  { metrics.Reconciliations.Add(1) }
func IncrFetchRequests()    { metrics.FetchRequests.Add(1) }
func IncrFetchErrors()      { metrics.FetchErrors.Add(1) }
func IncrSnapshotWrites()   { metrics.SnapshotWrites.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"portfolio_scrapes": metrics.PortfolioScrapes.Load(),
		"resume_parses":     metrics.ResumeParses.Load(),
		"resume_errors":     metrics.ResumeErrors.Load(),
		"github_fetches":    metrics.GitHubFetches.Load(),
		"instagram_scrapes": metrics.InstagramScrapes.Load(),
		"reconciliations":   metrics.Reconciliations.Load(),
		"fetch_requests":    metrics.FetchRequests.Load(),
		"fetch_errors":      metrics.FetchErrors.Load(),
		"snapshot_writes":   metrics.SnapshotWrites.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"portfolio_scrapes", "resume_parses", "resume_errors",
		"github_fetches", "instagram_scrapes", "reconciliations",
		"fetch_requests", "fetch_errors", "snapshot_writes",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
