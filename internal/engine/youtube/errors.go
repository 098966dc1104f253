package youtube

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a transcript pipeline failure.
type Kind int

const (
	KindInvalidIdentifier Kind = iota + 1
	KindPageFetch
	KindTranscriptFetch
	KindBlocked
	KindVideoUnavailable
	KindCaptionsDisabled
	KindNoTranscriptsAvailable
	KindLanguageNotAvailable
)

var kindNames = map[Kind]string{
	KindInvalidIdentifier:      "invalid_identifier",
	KindPageFetch:              "page_fetch",
	KindTranscriptFetch:        "transcript_fetch",
	KindBlocked:                "blocked",
	KindVideoUnavailable:       "video_unavailable",
	KindCaptionsDisabled:       "captions_disabled",
	KindNoTranscriptsAvailable: "no_transcripts_available",
	KindLanguageNotAvailable:   "language_not_available",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single failure type returned by the transcript pipeline.
type Error struct {
	Kind      Kind
	VideoID   string
	Lang      string   // requested language, KindLanguageNotAvailable only
	Available []string // available language codes, KindLanguageNotAvailable only
	Err       error    // underlying transport error, fetch kinds only
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrInvalidIdentifier      = &Error{Kind: KindInvalidIdentifier}
	ErrPageFetch              = &Error{Kind: KindPageFetch}
	ErrTranscriptFetch        = &Error{Kind: KindTranscriptFetch}
	ErrBlocked                = &Error{Kind: KindBlocked}
	ErrVideoUnavailable       = &Error{Kind: KindVideoUnavailable}
	ErrCaptionsDisabled       = &Error{Kind: KindCaptionsDisabled}
	ErrNoTranscriptsAvailable = &Error{Kind: KindNoTranscriptsAvailable}
	ErrLanguageNotAvailable   = &Error{Kind: KindLanguageNotAvailable}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidIdentifier:
		msg = "impossible to retrieve YouTube video ID"
	case KindPageFetch:
		msg = "an error occurred while fetching the video page"
	case KindTranscriptFetch:
		msg = "an error occurred while fetching the transcript"
	case KindBlocked:
		msg = "YouTube is receiving too many requests from this IP and now requires solving a captcha to continue"
	case KindVideoUnavailable:
		msg = "the video is no longer available"
	case KindCaptionsDisabled:
		msg = "transcript is disabled on this video"
	case KindNoTranscriptsAvailable:
		msg = "no transcripts are available for this video"
	case KindLanguageNotAvailable:
		msg = fmt.Sprintf("no transcripts are available in %s for this video; available languages: %s",
			e.Lang, strings.Join(e.Available, ", "))
	default:
		msg = "transcript error (" + e.Kind.String() + ")"
	}
	if e.VideoID != "" {
		msg += " (" + e.VideoID + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "youtube transcript: " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the pipeline failure kind from err.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}
