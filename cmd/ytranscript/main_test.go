package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testID   = "dQw4w9WgXcQ"
	testPage = `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		`{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en","languageCode":"en"}]}}}`
	testDoc = `<transcript><text start="0" dur="1.5">hello &amp;amp; bye</text><text start="61.25" dur="2">world</text></transcript>`
)

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, rawURL string, _ map[string]string) (string, error) {
	if strings.Contains(rawURL, "/api/timedtext") {
		return testDoc, nil
	}
	return testPage, nil
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx := &commandContext{newClient: func() *youtube.Client { return youtube.NewClient(stubFetcher{}) }}
	cmd := newRootCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFetchFormats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"hello & bye world"}},
		{"srt", []string{"1\n00:00:00,000 --> 00:00:01,500\nhello & bye", "2\n00:01:01,250 --> 00:01:03,250\nworld"}},
		{"json", []string{`"offset_ms": 61250`, `"lang": "en"`}},
		{"table", []string{"00:01:01,250", "Dur ms", "world"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runCLI(t, "fetch", testID, "--format", tt.format)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestFetchUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "fetch", testID, "-f", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestFetchInvalidIdentifier(t *testing.T) {
	_, err := runCLI(t, "fetch", "https://example.com/watch")
	assert.ErrorIs(t, err, youtube.ErrInvalidIdentifier)
}

func TestIDCommand(t *testing.T) {
	out, err := runCLI(t, "id", "https://youtu.be/"+testID, "https://www.youtube.com/shorts/"+testID)
	require.NoError(t, err)
	assert.Contains(t, out, "Video ID")
	assert.NotContains(t, out, " - ")

	out, err = runCLI(t, "id", "not-a-video-url")
	assert.ErrorIs(t, err, youtube.ErrInvalidIdentifier)
	assert.Contains(t, out, "not-a-video-url")
}
