package highlight

import (
	"strings"

	"github.com/emzakit/slothymarker/pkg/timecode"
)

// Highlight is a single user-marked span of a document.
//
// StartPos anchors the span by character offset into the raw text buffer;
// -1 means the span is not positionally anchored (extracted from a binary
// format, or not found in the raw text). Start and End are seconds and only
// meaningful for transcript documents; timecode.Unknown means absent.
type Highlight struct {
	// ID is an opaque identity assigned at creation. Two highlights with
	// identical fields are still distinct records; removal matches on ID.
	ID int

	Text     string
	StartPos int
	Start    float64
	End      float64

	// Header is the timestamp header inherited from the nearest preceding
	// timestamp line, empty for simple documents.
	Header string

	// SortKey supports manual reordering in simple mode, independent of
	// StartPos once the user has reordered.
	SortKey int
}

// New creates an unanchored, untimed highlight
func New(text string) *Highlight {
	return &Highlight{
		Text:     text,
		StartPos: -1,
		Start:    timecode.Unknown,
		End:      timecode.Unknown,
	}
}

// DisplayText returns the string shown in highlight lists: the timestamp
// header plus the text when a header exists, otherwise just the text. Stray
// delimiter characters are stripped from the body.
func (h *Highlight) DisplayText() string {
	clean := strings.ReplaceAll(h.Text, "==", "")
	if h.Header != "" {
		return h.Header + "\n" + clean
	}
	return clean
}

// Anchored reports whether the highlight has a positional anchor
func (h *Highlight) Anchored() bool {
	return h.StartPos >= 0
}

// Timed reports whether the highlight carries a start time
func (h *Highlight) Timed() bool {
	return h.Start >= 0
}

// Clone returns an independent copy of the highlight
func (h *Highlight) Clone() *Highlight {
	c := *h
	return &c
}

// CloneList deep-copies a highlight list
func CloneList(hs []*Highlight) []*Highlight {
	out := make([]*Highlight, len(hs))
	for i, h := range hs {
		out[i] = h.Clone()
	}
	return out
}
