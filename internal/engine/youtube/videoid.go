package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

// VideoIDLength is the fixed length of a canonical YouTube video id.
const VideoIDLength = 11

// videoIDRE matches the known watch/embed/shorts/short-link shapes when the
// input cannot be handled by url.Parse (no scheme, stray characters).
var videoIDRE = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts|live)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

var videoIDAlphabetRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// idPathMarkers are first path segments followed by the video id.
var idPathMarkers = map[string]bool{
	"v":      true,
	"e":      true,
	"embed":  true,
	"shorts": true,
	"live":   true,
}

// ResolveVideoID turns a bare id or a YouTube URL into a canonical video id.
// Returns "" when the input cannot be resolved.
//
// An 11-character input is returned as-is without further checks.
func ResolveVideoID(input string) string {
	if input == "" {
		return ""
	}
	if len(input) == VideoIDLength {
		return input
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return matchVideoID(input)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	switch {
	case len(segs[0]) == VideoIDLength:
		return validVideoID(segs[0])
	case idPathMarkers[strings.ToLower(segs[0])]:
		if len(segs) > 1 {
			return validVideoID(segs[1])
		}
		return ""
	default:
		return validVideoID(u.Query().Get("v"))
	}
}

func matchVideoID(s string) string {
	if m := videoIDRE.FindStringSubmatch(s); len(m) >= 2 {
		return validVideoID(m[1])
	}
	return ""
}

func validVideoID(s string) string {
	if videoIDAlphabetRE.MatchString(s) {
		return s
	}
	return ""
}
