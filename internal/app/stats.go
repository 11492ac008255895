package app

import (
	"strings"

	"github.com/emzakit/slothymarker/pkg/highlight"
	"github.com/emzakit/slothymarker/pkg/timecode"
)

// Stats summarizes the open document for status displays
type Stats struct {
	// Words in the raw text and in the highlighted spans
	DocumentWords  int
	HighlightWords int

	// Summed timestamp-range durations, in seconds
	DocumentDuration  float64
	HighlightDuration float64
}

// ReadingRates are the spoken-word rates the reading time estimates cover.
var ReadingRates = [3]int{90, 130, 160}

// ReadingTime estimates the seconds needed to read wordCount words aloud at
// the given words-per-minute rate.
func ReadingTime(wordCount, wpm int) float64 {
	if wpm <= 0 {
		return 0
	}
	return float64(wordCount) / float64(wpm) * 60
}

// Stats computes word counts and timestamp-range durations for the current
// document and its highlights.
func (a *App) Stats() Stats {
	s := Stats{
		DocumentWords:    wordCount(a.engine.RawText()),
		DocumentDuration: totalDuration(a.engine.RawText()),
	}
	for _, h := range a.engine.Highlights() {
		s.HighlightWords += wordCount(h.Text)
	}
	s.HighlightDuration = highlightDuration(a.engine.Highlights())
	return s
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// totalDuration sums the durations of every "start --> end" line in the text
func totalDuration(text string) float64 {
	total := 0.0
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "-->") {
			total += timecode.RangeDuration(line)
		}
	}
	return total
}

// highlightDuration sums each highlight's header range; only the first range
// line per highlight counts.
func highlightDuration(hs []*highlight.Highlight) float64 {
	total := 0.0
	for _, h := range hs {
		for _, line := range strings.Split(h.DisplayText(), "\n") {
			if strings.Contains(line, "-->") {
				total += timecode.RangeDuration(line)
				break
			}
		}
	}
	return total
}
