package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	maxBatchVideos  = 20
	summaryMaxChars = 8000 // max transcript chars sent to LLM
	formatSegments  = "segments"
	formatText      = "text"
)

// RegisterTools registers the transcript tools on the given MCP server:
// youtube_transcript, youtube_transcripts, youtube_transcript_summary.
func RegisterTools(server *mcp.Server, client *youtube.Client) {
	registerTranscript(server, client)
	registerBatchTranscripts(server, client)
	registerTranscriptSummary(server, client)
}

func registerTranscript(server *mcp.Server, client *youtube.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the closed-caption transcript of a YouTube video by id or URL. Returns joined text (default) or timed segments with offset_ms/duration_ms. Errors are prefixed with a kind: invalid_identifier, blocked, video_unavailable, captions_disabled, no_transcripts_available, language_not_available, page_fetch, transcript_fetch.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptOutput, error) {
		out, err := handleTranscript(ctx, client, input)
		return nil, out, err
	})
}

func handleTranscript(ctx context.Context, client *youtube.Client, input TranscriptInput) (TranscriptOutput, error) {
	if strings.TrimSpace(input.Video) == "" {
		return TranscriptOutput{}, errors.New("video is required")
	}
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = formatText
	}
	if format != formatText && format != formatSegments {
		return TranscriptOutput{}, fmt.Errorf("unknown format %q (want text or segments)", input.Format)
	}

	var segs []youtube.Segment
	err := engine.TrackOperation(ctx, "youtube_transcript", func(ctx context.Context) error {
		var err error
		segs, err = client.FetchTranscript(ctx, input.Video, youtube.Config{Lang: input.Lang, Proxy: input.Proxy})
		return err
	})
	if err != nil {
		slog.Warn("youtube_transcript failed", slog.String("video", input.Video), slog.Any("error", err))
		return TranscriptOutput{}, toolutil.ToolError(err)
	}

	out := transcriptOutput(youtube.ResolveVideoID(input.Video), segs)
	if format == formatSegments {
		out.Segments = segs
	} else {
		out.Text = youtube.JoinText(segs, toolutil.ClampMaxChars(input.MaxChars))
	}
	return out, nil
}

// transcriptOutput fills the summary fields shared by every format.
func transcriptOutput(videoID string, segs []youtube.Segment) TranscriptOutput {
	out := TranscriptOutput{VideoID: videoID, SegmentCount: len(segs)}
	if len(segs) > 0 {
		out.Lang = segs[0].Lang
		last := segs[len(segs)-1]
		out.DurationMs = last.OffsetMs + last.DurationMs
	}
	return out
}

// --- youtube_transcripts ---

func registerBatchTranscripts(server *mcp.Server, client *youtube.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcripts",
		Description: "Fetch transcripts for up to 20 YouTube videos in parallel. Returns one result per input in the same order, each with joined text or an error and error_kind. One failing video does not fail the batch.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BatchTranscriptInput) (*mcp.CallToolResult, BatchTranscriptOutput, error) {
		out, err := handleBatchTranscripts(ctx, client, input)
		return nil, out, err
	})
}

func handleBatchTranscripts(ctx context.Context, client *youtube.Client, input BatchTranscriptInput) (BatchTranscriptOutput, error) {
	if len(input.Videos) == 0 {
		return BatchTranscriptOutput{}, errors.New("videos is required")
	}
	if len(input.Videos) > maxBatchVideos {
		return BatchTranscriptOutput{}, fmt.Errorf("too many videos: %d (max %d)", len(input.Videos), maxBatchVideos)
	}

	results := client.FetchTranscripts(ctx, input.Videos, youtube.Config{Lang: input.Lang}, youtube.BatchOptions{
		Concurrency:       engine.Cfg.BatchConcurrency,
		RequestsPerSecond: engine.Cfg.BatchRPS,
	})

	maxChars := toolutil.ClampMaxChars(input.MaxChars)
	out := BatchTranscriptOutput{Results: make([]BatchTranscriptItem, len(results))}
	for i, r := range results {
		item := BatchTranscriptItem{Input: r.Input, VideoID: youtube.ResolveVideoID(r.Input)}
		if r.Err != nil {
			item.Error = r.Err.Error()
			item.ErrorKind = toolutil.ErrorKind(r.Err)
			out.Failed++
		} else {
			t := transcriptOutput(item.VideoID, r.Segments)
			item.Lang = t.Lang
			item.SegmentCount = t.SegmentCount
			item.Text = youtube.JoinText(r.Segments, maxChars)
			out.Succeeded++
		}
		out.Results[i] = item
	}
	slog.Info("youtube_transcripts done",
		slog.Int("videos", len(results)), slog.Int("succeeded", out.Succeeded), slog.Int("failed", out.Failed))
	return out, nil
}

// --- youtube_transcript_summary ---

func registerTranscriptSummary(server *mcp.Server, client *youtube.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript_summary",
		Description: "Fetch a YouTube video's transcript and summarize it with the configured LLM: a short overview plus key points in order. Optional focus narrows the summary to a question or topic.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SummaryInput) (*mcp.CallToolResult, SummaryOutput, error) {
		out, err := handleTranscriptSummary(ctx, client, input)
		return nil, out, err
	})
}

func handleTranscriptSummary(ctx context.Context, client *youtube.Client, input SummaryInput) (SummaryOutput, error) {
	if strings.TrimSpace(input.Video) == "" {
		return SummaryOutput{}, errors.New("video is required")
	}
	if engine.Cfg.LLMClient == nil {
		return SummaryOutput{}, engine.ErrLLMDisabled
	}

	segs, err := client.FetchTranscript(ctx, input.Video, youtube.Config{Lang: input.Lang})
	if err != nil {
		return SummaryOutput{}, toolutil.ToolError(err)
	}
	if len(segs) == 0 {
		return SummaryOutput{}, toolutil.ToolError(&youtube.Error{
			Kind:    youtube.KindNoTranscriptsAvailable,
			VideoID: youtube.ResolveVideoID(input.Video),
		})
	}

	out := SummaryOutput{VideoID: youtube.ResolveVideoID(input.Video), Lang: segs[0].Lang}
	var summary string
	err = engine.TrackOperation(ctx, "youtube_transcript_summary", func(ctx context.Context) error {
		var err error
		summary, err = engine.CallLLM(ctx, summarySystemPrompt, buildSummaryPrompt(segs, input.Focus))
		return err
	})
	if err != nil {
		return SummaryOutput{}, fmt.Errorf("summarize: %w", err)
	}
	out.Summary = summary
	return out, nil
}

func buildSummaryPrompt(segs []youtube.Segment, focus string) string {
	focusLine := ""
	if f := strings.TrimSpace(focus); f != "" {
		focusLine = "Focus on: " + f + "\n"
	}
	return fmt.Sprintf(summaryPrompt, focusLine, segs[0].Lang, youtube.JoinText(segs, summaryMaxChars))
}
