package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	PageFetches        atomic.Int64
	TrackFetches       atomic.Int64
	FetchRequests      atomic.Int64
	FetchErrors        atomic.Int64
	SegmentsParsed     atomic.Int64
	SegmentsSkipped    atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
}

// failures counts pipeline failures by error kind name.
var failures sync.Map // string → *atomic.Int64

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	m := map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"page_fetches":        metrics.PageFetches.Load(),
		"track_fetches":       metrics.TrackFetches.Load(),
		"fetch_requests":      metrics.FetchRequests.Load(),
		"fetch_errors":        metrics.FetchErrors.Load(),
		"segments_parsed":     metrics.SegmentsParsed.Load(),
		"segments_skipped":    metrics.SegmentsSkipped.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
	}
	failures.Range(func(k, v any) bool {
		m["failures_"+k.(string)] = v.(*atomic.Int64).Load()
		return true
	})
	return m
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the youtube sub-package.
func IncrTranscriptRequests()  { metrics.TranscriptRequests.Add(1) }
func IncrPageFetches()         { metrics.PageFetches.Add(1) }
func IncrTrackFetches()        { metrics.TrackFetches.Add(1) }
func AddSegmentsParsed(n int)  { metrics.SegmentsParsed.Add(int64(n)) }
func AddSegmentsSkipped(n int) { metrics.SegmentsSkipped.Add(int64(n)) }

// IncrFailure counts a pipeline failure under the given kind name.
func IncrFailure(kind string) {
	v, _ := failures.LoadOrStore(kind, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
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
