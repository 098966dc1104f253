package youtube

import (
	"context"
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTranscriptsKeepsOrder(t *testing.T) {
	f := newFakeFetcher()
	const otherID = "aaaaaaaaaaa"
	f.bodies[WatchURL(otherID)] = `<div class="g-recaptcha"></div>`

	inputs := []string{testID, "bogus", otherID, "https://youtu.be/" + testID}
	results := NewClient(f).FetchTranscripts(context.Background(), inputs, Config{}, BatchOptions{Concurrency: 2})
	require.Len(t, results, len(inputs))

	for i, r := range results {
		assert.Equal(t, inputs[i], r.Input)
	}
	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Segments, 3)
	assert.ErrorIs(t, results[1].Err, ErrInvalidIdentifier)
	assert.ErrorIs(t, results[2].Err, ErrBlocked)
	assert.NoError(t, results[3].Err)
	assert.Equal(t, results[0].Segments, results[3].Segments)
}

func TestFetchTranscriptsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	before := engine.GetMetrics()["failures_page_fetch"]

	results := NewClient(newFakeFetcher()).FetchTranscripts(ctx, []string{testID, testID}, Config{},
		BatchOptions{Concurrency: 1, RequestsPerSecond: 1})
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrPageFetch)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Equal(t, before+2, engine.GetMetrics()["failures_page_fetch"])
}

func TestFetchTranscriptsEmpty(t *testing.T) {
	results := NewClient(newFakeFetcher()).FetchTranscripts(context.Background(), nil, Config{}, BatchOptions{})
	assert.Empty(t, results)
}
