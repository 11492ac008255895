package export

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/emzakit/slothymarker/internal/document"
	"github.com/emzakit/slothymarker/pkg/errors"
	"github.com/emzakit/slothymarker/pkg/highlight"
	"github.com/emzakit/slothymarker/pkg/timecode"
)

// Format identifies a subtitle output format
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Timing controls end-time synthesis for subtitle export
type Timing struct {
	// FallbackDuration is added to the last entry's start when it has no
	// usable end time.
	FallbackDuration float64
	// MinimumDuration forces an entry open for at least this long when even
	// the synthesized end does not clear its start.
	MinimumDuration float64
}

// DefaultTiming matches the application defaults
var DefaultTiming = Timing{FallbackDuration: 5.0, MinimumDuration: 1.0}

// speakerPrefix matches a leading "Speaker N:" style attribution
var speakerPrefix = regexp.MustCompile(`(?i)^\s*Speaker\s*\d+[:\-]?\s*`)

// PlainText concatenates highlight display texts in document order: by
// position for simple documents, by start time for transcripts. Unanchored
// (or untimed) entries are excluded.
func PlainText(hs []*highlight.Highlight, mode string) string {
	var kept []*highlight.Highlight
	if mode == document.ModeSimple {
		for _, h := range hs {
			if h.StartPos != -1 {
				kept = append(kept, h)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].StartPos < kept[j].StartPos })
	} else {
		for _, h := range hs {
			if h.Start != timecode.Unknown {
				kept = append(kept, h)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	}

	texts := make([]string, len(kept))
	for i, h := range kept {
		texts[i] = h.DisplayText()
	}
	return strings.Join(texts, "\n\n")
}

// Transcript renders timed highlights with their headers, time-ordered and
// joined by blank lines. Used for [TRANSCRIPT] documents where subtitle
// block structure is not wanted.
func Transcript(hs []*highlight.Highlight) string {
	timed := timedSorted(hs)
	texts := make([]string, len(timed))
	for i, h := range timed {
		texts[i] = h.DisplayText()
	}
	return strings.Join(texts, "\n\n")
}

// Subtitle renders timed highlights as SRT or WebVTT.
//
// Entries without an end time strictly greater than their start get one
// synthesized: the next entry's start, or start plus the fallback duration
// for the last entry. If the synthesized end still does not clear the start,
// the minimum duration is forced. A leading "Speaker N:" prefix is stripped
// from the body text. With no timed highlights at all the result is empty,
// never a header-only file.
func Subtitle(hs []*highlight.Highlight, format Format, timing Timing) string {
	timed := timedSorted(hs)
	if len(timed) == 0 {
		return ""
	}

	var blocks []string
	if format == FormatVTT {
		blocks = append(blocks, "WEBVTT\n")
	}

	for i, h := range timed {
		end := h.End
		if end <= h.Start {
			if i+1 < len(timed) {
				end = timed[i+1].Start
			} else {
				end = h.Start + timing.FallbackDuration
			}
		}
		if end <= h.Start {
			end = h.Start + timing.MinimumDuration
		}

		text := strings.TrimSpace(speakerPrefix.ReplaceAllString(h.Text, ""))

		if format == FormatVTT {
			blocks = append(blocks, fmt.Sprintf("%s --> %s\n%s\n", timecode.FormatVTT(h.Start), timecode.FormatVTT(end), text))
		} else {
			blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s\n", i+1, timecode.FormatSRT(h.Start), timecode.FormatSRT(end), text))
		}
	}

	return strings.Join(blocks, "\n")
}

func timedSorted(hs []*highlight.Highlight) []*highlight.Highlight {
	var timed []*highlight.Highlight
	for _, h := range hs {
		if h.Start >= 0 {
			timed = append(timed, h)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].Start < timed[j].Start })
	return timed
}

// WriteFile writes export content to disk, all-or-nothing at the file level
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewIOError("failed to write export", err).WithContext("path", path)
	}
	return nil
}

// CopyToClipboard places export content on the system clipboard
func CopyToClipboard(content string) error {
	if err := clipboard.WriteAll(content); err != nil {
		return errors.NewIOError("failed to copy to clipboard", err)
	}
	return nil
}
