package editor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/emzakit/slothymarker/internal/document"
	"github.com/emzakit/slothymarker/pkg/highlight"
)

// Engine owns the canonical raw text buffer and the highlight list, and is
// the only component allowed to mutate them. Every mutating operation pushes
// one history snapshot and fires OnChange.
type Engine struct {
	rawText    string
	highlights []*highlight.Highlight
	mode       string
	nextID     int

	history      []snapshot
	historyIndex int

	// OnChange is called after every state change so a surrounding shell
	// can refresh its views. Nothing UI-shaped lives in the engine itself.
	OnChange func()
}

// NewEngine creates an empty engine in simple mode
func NewEngine() *Engine {
	return &Engine{
		mode:         document.ModeSimple,
		historyIndex: -1,
	}
}

// Load replaces the engine state with a freshly parsed document and resets
// history to a new baseline. Highlight identities are assigned here.
func (e *Engine) Load(rawText string, hs []*highlight.Highlight, mode string) {
	e.rawText = rawText
	e.highlights = hs
	e.mode = mode
	for _, h := range e.highlights {
		e.adopt(h)
		if e.mode == document.ModeSimple {
			h.SortKey = h.StartPos
		}
	}
	e.saveHistory(true)
	e.notify()
}

// Close discards the document and all history
func (e *Engine) Close() {
	e.rawText = ""
	e.highlights = nil
	e.mode = document.ModeSimple
	e.history = nil
	e.historyIndex = -1
	e.notify()
}

// RawText returns the current text buffer
func (e *Engine) RawText() string {
	return e.rawText
}

// Highlights returns the master highlight list in insertion order. Callers
// read it; they never mutate records or the list.
func (e *Engine) Highlights() []*highlight.Highlight {
	return e.highlights
}

// Mode returns the current document mode
func (e *Engine) Mode() string {
	return e.mode
}

// DisplayOrder returns the highlights in display order: by SortKey in simple
// mode, by start time in transcript modes. Untimed transcript highlights are
// excluded from the ordered view but stay in the master list.
func (e *Engine) DisplayOrder() []*highlight.Highlight {
	var out []*highlight.Highlight
	if e.mode == document.ModeSimple {
		out = append(out, e.highlights...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].SortKey < out[j].SortKey })
		return out
	}
	for _, h := range e.highlights {
		if h.Timed() {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// AddFromSelection splits a selection on blank-line boundaries and adds one
// highlight per paragraph. Re-highlighting an existing (position, text) pair
// is a no-op for that paragraph.
func (e *Engine) AddFromSelection(selected string, selectionStart int) {
	e.addFromSelection(selected, selectionStart)
	e.saveHistory(false)
	e.notify()
}

func (e *Engine) addFromSelection(selected string, selectionStart int) int {
	added := 0
	offset := 0
	for _, para := range strings.Split(selected, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		// Advancing search cursor: repeated identical paragraphs within one
		// selection each match at their own position.
		rel := strings.Index(selected[offset:], para)
		if rel < 0 {
			continue
		}
		paraStart := selectionStart + offset + rel
		offset += rel + len(para)

		if e.exists(paraStart, para) {
			continue
		}

		h := document.NewTimedHighlight(e.rawText, para, paraStart)
		if e.mode == document.ModeSimple {
			h.SortKey = h.StartPos
		}
		e.adopt(h)
		e.highlights = append(e.highlights, h)
		added++
	}
	return added
}

// HighlightAllOccurrences adds a highlight for every case-insensitive literal
// occurrence of term in the document and returns the number of matches. Zero
// matches leave state and history untouched.
func (e *Engine) HighlightAllOccurrences(term string) int {
	if term == "" {
		return 0
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	count := 0
	for _, m := range re.FindAllStringIndex(e.rawText, -1) {
		e.addFromSelection(e.rawText[m[0]:m[1]], m[0])
		count++
	}
	if count > 0 {
		e.saveHistory(false)
		e.notify()
	}
	return count
}

// EditText replaces a highlight's text, splicing the change into the raw
// text buffer and shifting the anchors of every highlight positioned after
// the edit. Anchors at or before the edited offset never move.
func (e *Engine) EditText(h *highlight.Highlight, newText string) {
	if h.Text == newText {
		return
	}

	if h.Anchored() {
		start := h.StartPos
		oldLen := len(h.Text)
		e.rawText = e.rawText[:start] + newText + e.rawText[start+oldLen:]

		delta := len(newText) - oldLen
		if delta != 0 {
			for _, other := range e.highlights {
				if other.ID == h.ID || other.StartPos <= start {
					continue
				}
				other.StartPos += delta
				if e.mode == document.ModeSimple {
					other.SortKey += delta
				}
			}
		}
	}
	h.Text = newText

	e.saveHistory(false)
	e.notify()
}

// Reorder replaces the highlight list with the given manual order. Only
// simple documents support manual ordering; transcript modes are a no-op.
func (e *Engine) Reorder(order []*highlight.Highlight) {
	if e.mode != document.ModeSimple {
		return
	}
	for i, h := range order {
		h.SortKey = i
	}
	e.highlights = append([]*highlight.Highlight(nil), order...)
	e.saveHistory(false)
	e.notify()
}

// Remove deletes the given highlights by identity. Structurally equal
// records are distinct and removable independently.
func (e *Engine) Remove(subset []*highlight.Highlight) {
	if len(subset) == 0 {
		return
	}
	doomed := make(map[int]struct{}, len(subset))
	for _, h := range subset {
		doomed[h.ID] = struct{}{}
	}
	kept := e.highlights[:0]
	for _, h := range e.highlights {
		if _, gone := doomed[h.ID]; !gone {
			kept = append(kept, h)
		}
	}
	e.highlights = kept
	e.saveHistory(false)
	e.notify()
}

// RemoveAll clears the highlight list
func (e *Engine) RemoveAll() {
	if len(e.highlights) == 0 {
		return
	}
	e.highlights = nil
	e.saveHistory(false)
	e.notify()
}

func (e *Engine) exists(startPos int, text string) bool {
	for _, h := range e.highlights {
		if h.StartPos == startPos && h.Text == text {
			return true
		}
	}
	return false
}

// adopt assigns an arena identity to a highlight entering the engine
func (e *Engine) adopt(h *highlight.Highlight) {
	e.nextID++
	h.ID = e.nextID
}

func (e *Engine) notify() {
	if e.OnChange != nil {
		e.OnChange()
	}
}
