package youtube

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// BatchOptions bounds a FetchTranscripts call.
type BatchOptions struct {
	Concurrency       int     // max in-flight videos; <=0 means 4
	RequestsPerSecond float64 // pacing of video starts; <=0 disables pacing
}

// BatchResult is the outcome for one input of FetchTranscripts.
type BatchResult struct {
	Input    string
	Segments []Segment
	Err      error
}

// FetchTranscripts fetches transcripts for several videos in parallel.
// Results are returned in input order. A failed video does not stop the
// others; only ctx cancellation cuts the batch short.
func (c *Client) FetchTranscripts(ctx context.Context, inputs []string, cfg Config, opts BatchOptions) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, in := range inputs {
		results[i].Input = in
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					results[i].Err = fail(&Error{Kind: KindPageFetch, VideoID: ResolveVideoID(in), Err: err})
					return nil
				}
			}
			results[i].Segments, results[i].Err = c.FetchTranscript(ctx, in, cfg)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
