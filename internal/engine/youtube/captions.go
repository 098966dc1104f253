package youtube

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Watch-page markers. Only extractCaptionsJSON depends on the page layout
// around the captions block; the other two are plain substring checks.
const (
	captionsMarker    = `"captions":`
	captchaMarker     = `class="g-recaptcha"`
	playabilityMarker = `"playabilityStatus":`
)

const youtubeOrigin = "https://www.youtube.com"

// CaptionTrack is one caption stream listed on the watch page.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind,omitempty"` // "asr" = auto-generated
}

type playerCaptions struct {
	PlayerCaptionsTracklistRenderer *struct {
		CaptionTracks []CaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// extractCaptionsJSON returns the JSON value following the "captions" key of
// the embedded player response. found is false when the marker is absent.
func extractCaptionsJSON(page string) (raw json.RawMessage, found bool, err error) {
	idx := strings.Index(page, captionsMarker)
	if idx < 0 {
		return nil, false, nil
	}
	dec := json.NewDecoder(strings.NewReader(page[idx+len(captionsMarker):]))
	if err := dec.Decode(&raw); err != nil {
		return nil, true, err
	}
	return raw, true, nil
}

// classifyMissingCaptions explains a page without a captions block.
func classifyMissingCaptions(page string) Kind {
	switch {
	case strings.Contains(page, captchaMarker):
		return KindBlocked
	case !strings.Contains(page, playabilityMarker):
		return KindVideoUnavailable
	default:
		return KindCaptionsDisabled
	}
}

// ExtractCaptionTracks lists the caption tracks embedded in a watch page.
// Track URLs are returned absolute. Failures are *Error values without VideoID.
func ExtractCaptionTracks(page string) ([]CaptionTrack, error) {
	raw, found, err := extractCaptionsJSON(page)
	if !found {
		return nil, &Error{Kind: classifyMissingCaptions(page)}
	}
	if err != nil {
		return nil, &Error{Kind: KindNoTranscriptsAvailable}
	}

	var pc playerCaptions
	if err := json.Unmarshal(raw, &pc); err != nil || pc.PlayerCaptionsTracklistRenderer == nil {
		return nil, &Error{Kind: KindNoTranscriptsAvailable}
	}

	tracks := make([]CaptionTrack, 0, len(pc.PlayerCaptionsTracklistRenderer.CaptionTracks))
	for _, t := range pc.PlayerCaptionsTracklistRenderer.CaptionTracks {
		u, ok := absoluteTrackURL(t.BaseURL)
		if !ok {
			continue
		}
		t.BaseURL = u
		tracks = append(tracks, t)
	}
	if len(tracks) == 0 {
		return nil, &Error{Kind: KindNoTranscriptsAvailable}
	}
	return tracks, nil
}

// absoluteTrackURL resolves a track URL against the YouTube origin and drops
// any fmt parameter so the plain timedtext format is served.
func absoluteTrackURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	base, _ := url.Parse(youtubeOrigin)
	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	q := u.Query()
	if q.Has("fmt") {
		q.Del("fmt")
		u.RawQuery = q.Encode()
	}
	return u.String(), true
}

// SelectTrack picks a track for lang. An empty lang selects the first track.
// Otherwise an exact code match wins, then the first code containing lang
// (so "en" matches "en-US"). List order is never changed.
func SelectTrack(tracks []CaptionTrack, lang string) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	if lang == "" {
		return tracks[0], true
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.Contains(t.LanguageCode, lang) {
			return t, true
		}
	}
	return CaptionTrack{}, false
}

// LanguageCodes returns the track language codes in list order.
func LanguageCodes(tracks []CaptionTrack) []string {
	codes := make([]string, len(tracks))
	for i, t := range tracks {
		codes[i] = t.LanguageCode
	}
	return codes
}

// LocateTrack extracts the caption tracks from a watch page and selects one
// for lang, classifying every failure.
func LocateTrack(page, lang string) (CaptionTrack, error) {
	tracks, err := ExtractCaptionTracks(page)
	if err != nil {
		return CaptionTrack{}, err
	}
	track, ok := SelectTrack(tracks, lang)
	if !ok {
		return CaptionTrack{}, &Error{
			Kind:      KindLanguageNotAvailable,
			Lang:      lang,
			Available: LanguageCodes(tracks),
		}
	}
	return track, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Such tracks usually answer with an empty document when fetched server-side.
func needsPoToken(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return u.Query().Get("exp") == "xpe"
}
