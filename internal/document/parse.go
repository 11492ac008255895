package document

import (
	"regexp"
	"strings"

	"github.com/emzakit/slothymarker/pkg/highlight"
	"github.com/emzakit/slothymarker/pkg/timecode"
)

// ModeSimple is the document mode for freeform text without timestamps.
// Transcript documents use their recognized first-line tag as the mode string.
const ModeSimple = "simple"

var (
	// metaHeader matches the invisible HTML-comment metadata block some
	// saved documents carry before their content.
	metaHeader = regexp.MustCompile(`(?s)<!---.*?-->\n*`)

	// marker matches a ==highlighted span==; spans may contain newlines but
	// never nest, so the lazy match is correct.
	marker = regexp.MustCompile(`(?s)==(.*?)==`)
)

// span is a delimited region found during marker stripping, with its exact
// offset in the stripped text.
type span struct {
	text string
	pos  int
}

// stripMarkers removes all ==...== delimiters from content and returns the
// clean text along with each span's content and offset into the clean text.
func stripMarkers(content string) (string, []span) {
	matches := marker.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var b strings.Builder
	spans := make([]span, 0, len(matches))
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		text := content[m[2]:m[3]]
		spans = append(spans, span{text: text, pos: b.Len()})
		b.WriteString(text)
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), spans
}

// Parse turns raw file content into (rawText, highlights, mode).
//
// A leading metadata block is stripped first. If the first non-blank line
// exactly matches one of the recognized tags the document is a transcript in
// that mode and every highlight inherits the nearest preceding timestamp;
// otherwise the document is simple and highlight positions come from a direct
// substring search in left-to-right delimiter order.
func Parse(content string, tags []string) (string, []*highlight.Highlight, string) {
	content = metaHeader.ReplaceAllString(content, "")

	firstLine := strings.TrimSpace(strings.SplitN(strings.TrimLeft(content, " \t\r\n"), "\n", 2)[0])
	for _, tag := range tags {
		if firstLine == tag {
			rawText, hs := parseTranscript(content)
			return rawText, hs, tag
		}
	}

	rawText, hs := parseSimple(content)
	return rawText, hs, ModeSimple
}

func parseSimple(content string) (string, []*highlight.Highlight) {
	rawText, spans := stripMarkers(content)
	hs := make([]*highlight.Highlight, 0, len(spans))
	for _, sp := range spans {
		h := highlight.New(sp.text)
		h.StartPos = strings.Index(rawText, sp.text)
		hs = append(hs, h)
	}
	return rawText, hs
}

func parseTranscript(content string) (string, []*highlight.Highlight) {
	rawText, spans := stripMarkers(content)
	hs := make([]*highlight.Highlight, 0, len(spans))
	for _, sp := range spans {
		if sp.text == "" {
			continue
		}
		hs = append(hs, NewTimedHighlight(rawText, sp.text, sp.pos))
	}
	return rawText, hs
}

// NewTimedHighlight builds a highlight anchored at startPos, inheriting the
// nearest timestamp header above it. This is the same path used both at parse
// time and when the user marks a new selection, so new highlights carry the
// timestamp they would get when re-parsed from saved text.
func NewTimedHighlight(rawText, text string, startPos int) *highlight.Highlight {
	header, start, end := timecode.FindPreceding(rawText[:startPos])
	return &highlight.Highlight{
		Text:     text,
		StartPos: startPos,
		Start:    start,
		End:      end,
		Header:   header,
	}
}

// FromExtraction converts a binary extractor's output into highlight records:
// each substring anchors at its first occurrence in the raw text, -1 when not
// found. Duplicate matches are accepted and not deduplicated.
func FromExtraction(rawText string, substrings []string) []*highlight.Highlight {
	hs := make([]*highlight.Highlight, 0, len(substrings))
	for _, s := range substrings {
		h := highlight.New(s)
		h.StartPos = strings.Index(rawText, s)
		hs = append(hs, h)
	}
	return hs
}
