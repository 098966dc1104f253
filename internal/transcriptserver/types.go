package transcriptserver

import "github.com/anatolykoptev/go_transcript/internal/engine/youtube"

// TranscriptInput is the input for youtube_transcript.
type TranscriptInput struct {
	Video    string `json:"video" jsonschema:"YouTube video id or URL (watch, embed, shorts, youtu.be)"`
	Lang     string `json:"lang,omitempty" jsonschema:"Preferred caption language code, e.g. en or es. Default: the video's first track"`
	Proxy    string `json:"proxy,omitempty" jsonschema:"Optional proxy, scheme://[user:pass@]host[:port]. Ignored when the server runs with the browser client (USE_BROWSER_CLIENT), which uses its own proxy pool"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: text (default, joined transcript) or segments (timed lines)"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"Max characters of joined text (default: 20000)"`
}

// TranscriptOutput is the structured output of youtube_transcript.
type TranscriptOutput struct {
	VideoID      string            `json:"video_id"`
	Lang         string            `json:"lang"`
	SegmentCount int               `json:"segment_count"`
	DurationMs   int64             `json:"duration_ms"`
	Text         string            `json:"text,omitempty"`
	Segments     []youtube.Segment `json:"segments,omitempty"`
}

// BatchTranscriptInput is the input for youtube_transcripts.
type BatchTranscriptInput struct {
	Videos   []string `json:"videos" jsonschema:"YouTube video ids or URLs (max 20)"`
	Lang     string   `json:"lang,omitempty" jsonschema:"Preferred caption language code for every video"`
	MaxChars int      `json:"max_chars,omitempty" jsonschema:"Max characters of joined text per video (default: 20000)"`
}

// BatchTranscriptItem is one video's result in youtube_transcripts.
type BatchTranscriptItem struct {
	Input        string `json:"input"`
	VideoID      string `json:"video_id,omitempty"`
	Lang         string `json:"lang,omitempty"`
	SegmentCount int    `json:"segment_count"`
	Text         string `json:"text,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
}

// BatchTranscriptOutput is the structured output of youtube_transcripts.
type BatchTranscriptOutput struct {
	Results   []BatchTranscriptItem `json:"results"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// SummaryInput is the input for youtube_transcript_summary.
type SummaryInput struct {
	Video string `json:"video" jsonschema:"YouTube video id or URL"`
	Lang  string `json:"lang,omitempty" jsonschema:"Preferred caption language code"`
	Focus string `json:"focus,omitempty" jsonschema:"Optional question or topic to focus the summary on"`
}

// SummaryOutput is the structured output of youtube_transcript_summary.
type SummaryOutput struct {
	VideoID string `json:"video_id"`
	Lang    string `json:"lang"`
	Summary string `json:"summary"`
}
