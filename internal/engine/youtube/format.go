package youtube

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// JoinText joins segment text with single spaces. maxChars > 0 truncates
// the result at a word boundary.
func JoinText(segs []Segment, maxChars int) string {
	var sb strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	text := sb.String()
	if maxChars > 0 {
		text = engine.TruncateAtWord(text, maxChars)
	}
	return text
}

// FormatTimestamp renders milliseconds as an SRT timestamp, HH:MM:SS,mmm.
func FormatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}

// WriteSRT writes segments as a SubRip document.
func WriteSRT(w io.Writer, segs []Segment) error {
	bw := bufio.NewWriter(w)
	for i, s := range segs {
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(s.OffsetMs), FormatTimestamp(s.OffsetMs+s.DurationMs), s.Text)
	}
	return bw.Flush()
}
