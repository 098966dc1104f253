package youtube

import (
	"encoding/xml"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"golang.org/x/net/html"
)

// Segment is one timed line of transcript text.
type Segment struct {
	Text       string `json:"text"`
	OffsetMs   int64  `json:"offset_ms"`
	DurationMs int64  `json:"duration_ms"`
	Lang       string `json:"lang"`
}

// ytLine is one <text start=".." dur="..">..</text> element.
type ytLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Inner string `xml:",innerxml"`
}

// textStartRe finds the opening of each <text> element. The document is
// split at these offsets so one malformed element cannot hide the rest.
var textStartRe = regexp.MustCompile(`<text[\s>/]`)

// ParseTimedText parses a timedtext document into segments in document order.
// Elements that are not well-formed, or carry a missing or invalid start/dur,
// are skipped and parsing resumes at the next element. Lang is left empty.
func ParseTimedText(doc string) []Segment {
	starts := textStartRe.FindAllStringIndex(doc, -1)
	segs := make([]Segment, 0, len(starts))
	skipped := 0

	for i, loc := range starts {
		end := len(doc)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		seg, ok := parseTextElement(doc[loc[0]:end])
		if !ok {
			skipped++
			continue
		}
		segs = append(segs, seg)
	}

	engine.AddSegmentsParsed(len(segs))
	if skipped > 0 {
		engine.AddSegmentsSkipped(skipped)
	}
	return segs
}

// parseTextElement decodes the single <text> element at the start of chunk.
func parseTextElement(chunk string) (Segment, bool) {
	dec := xml.NewDecoder(strings.NewReader(chunk))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	tok, err := dec.Token()
	if err != nil {
		return Segment{}, false
	}
	se, ok := tok.(xml.StartElement)
	if !ok || se.Name.Local != "text" {
		return Segment{}, false
	}
	var line ytLine
	if err := dec.DecodeElement(&line, &se); err != nil {
		return Segment{}, false
	}
	offset, ok1 := secondsToMillis(line.Start)
	dur, ok2 := secondsToMillis(line.Dur)
	if !ok1 || !ok2 {
		return Segment{}, false
	}
	return Segment{
		Text:       decodeText(line.Inner),
		OffsetMs:   offset,
		DurationMs: dur,
	}, true
}

// secondsToMillis converts decimal seconds to rounded milliseconds.
// Values that do not fit in an int64 are rejected.
func secondsToMillis(s string) (int64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	ms := math.Round(v * 1000)
	if ms >= 1<<63 {
		return 0, false
	}
	return int64(ms), true
}

// decodeText resolves the raw element content to plain text. Captions are
// entity-encoded twice (XML, then HTML), and may carry inline <font> tags.
func decodeText(inner string) string {
	return html.UnescapeString(engine.CleanHTML(html.UnescapeString(inner)))
}
