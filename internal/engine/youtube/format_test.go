package youtube

import (
	"bytes"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00,000"},
		{1500, "00:00:01,500"},
		{61_001, "00:01:01,001"},
		{3_723_456, "01:02:03,456"},
		{-5, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.ms); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestWriteSRT(t *testing.T) {
	segs := []Segment{
		{Text: "hello", OffsetMs: 0, DurationMs: 1500},
		{Text: "world", OffsetMs: 1500, DurationMs: 2333},
	}
	var buf bytes.Buffer
	if err := WriteSRT(&buf, segs); err != nil {
		t.Fatalf("WriteSRT error: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:01,500\nhello\n\n" +
		"2\n00:00:01,500 --> 00:00:03,833\nworld\n\n"
	if buf.String() != want {
		t.Errorf("WriteSRT output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestJoinText(t *testing.T) {
	segs := []Segment{{Text: "one"}, {Text: ""}, {Text: "two"}, {Text: "three"}}
	if got := JoinText(segs, 0); got != "one two three" {
		t.Errorf("JoinText() = %q", got)
	}
	if got := JoinText(nil, 10); got != "" {
		t.Errorf("JoinText(nil) = %q, want empty", got)
	}
}
