package engine

import (
	"context"
	"testing"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`<font color="#E5E5E5">hi</font> there`, "hi there"},
		{"line one\nline   two", "line one line two"},
		{"<i></i>", ""},
		{"I <3 you > all", "I <3 you > all"},
		{"a < b", "a < b"},
		{"<br/>x<br />", "x"},
	}
	for _, tt := range tests {
		if got := CleanHTML(tt.in); got != tt.want {
			t.Errorf("CleanHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateAtWord(t *testing.T) {
	s := "the quick brown fox jumps"
	if got := TruncateAtWord(s, 100); got != s {
		t.Errorf("TruncateAtWord() = %q, want unchanged", got)
	}
	if got := TruncateAtWord(s, 12); len([]rune(got)) > 15 {
		t.Errorf("TruncateAtWord() = %q, too long", got)
	}
}

func TestRetryDoPassesResult(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), DefaultRetryConfig, func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("RetryDo() = %q, %v, want ok, nil", got, err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	if !IsRetryableStatus(503) {
		t.Error("IsRetryableStatus(503) = false, want true")
	}
	if IsRetryableStatus(404) {
		t.Error("IsRetryableStatus(404) = true, want false")
	}
}
