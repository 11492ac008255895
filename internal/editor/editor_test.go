package editor

import (
	"strings"
	"testing"

	"github.com/emzakit/slothymarker/internal/document"
	"github.com/emzakit/slothymarker/pkg/highlight"
)

var testTags = []string{"[SRT]", "[VTT]", "[TRANSCRIPT]"}

func loadSimple(t *testing.T, content string) *Engine {
	t.Helper()
	rawText, hs, mode := document.Parse(content, testTags)
	e := NewEngine()
	e.Load(rawText, hs, mode)
	return e
}

// verifyAnchors checks the offset-shift invariant: every anchored
// highlight's text must sit exactly at its recorded offset.
func verifyAnchors(t *testing.T, e *Engine) {
	t.Helper()
	for _, h := range e.Highlights() {
		if !h.Anchored() {
			continue
		}
		end := h.StartPos + len(h.Text)
		if end > len(e.RawText()) || e.RawText()[h.StartPos:end] != h.Text {
			t.Errorf("Highlight %d (%q) is not anchored at offset %d", h.ID, h.Text, h.StartPos)
		}
	}
}

func TestLoad_SimpleSortKeys(t *testing.T) {
	e := loadSimple(t, "one ==two== three ==four==")
	for _, h := range e.Highlights() {
		if h.SortKey != h.StartPos {
			t.Errorf("Expected SortKey %d to match StartPos %d", h.SortKey, h.StartPos)
		}
	}
}

func TestLoad_SortKeysSurviveShrinkingEdit(t *testing.T) {
	e := loadSimple(t, "==alphaalpha== middle ==omega==")
	hs := e.Highlights()
	if len(hs) != 2 {
		t.Fatalf("Expected 2 highlights, got %d", len(hs))
	}

	e.EditText(hs[0], "a")

	ordered := e.DisplayOrder()
	if ordered[0].Text != "a" || ordered[1].Text != "omega" {
		t.Errorf("Display order inverted after shrinking edit: %q before %q",
			ordered[0].Text, ordered[1].Text)
	}
	if hs[1].SortKey < 0 {
		t.Errorf("Expected a non-negative SortKey after shift, got %d", hs[1].SortKey)
	}
	verifyAnchors(t, e)
}

func TestAddFromSelection_SplitsParagraphs(t *testing.T) {
	e := loadSimple(t, "First paragraph here.\n\nSecond paragraph here.\n\nThird.")
	e.AddFromSelection(e.RawText(), 0)

	hs := e.Highlights()
	if len(hs) != 3 {
		t.Fatalf("Expected 3 highlights, got %d", len(hs))
	}
	if hs[0].Text != "First paragraph here." || hs[2].Text != "Third." {
		t.Errorf("Unexpected paragraph split: %v", hs)
	}
	verifyAnchors(t, e)
}

func TestAddFromSelection_RepeatedParagraphsAdvance(t *testing.T) {
	e := loadSimple(t, "same\n\nsame\n\nsame")
	e.AddFromSelection(e.RawText(), 0)

	hs := e.Highlights()
	if len(hs) != 3 {
		t.Fatalf("Expected 3 highlights, got %d", len(hs))
	}
	seen := map[int]bool{}
	for _, h := range hs {
		if seen[h.StartPos] {
			t.Errorf("Duplicate StartPos %d for repeated paragraph", h.StartPos)
		}
		seen[h.StartPos] = true
	}
	verifyAnchors(t, e)
}

func TestAddFromSelection_Idempotent(t *testing.T) {
	e := loadSimple(t, "alpha beta gamma")
	e.AddFromSelection("beta", 6)
	e.AddFromSelection("beta", 6)

	if len(e.Highlights()) != 1 {
		t.Fatalf("Expected 1 highlight after duplicate add, got %d", len(e.Highlights()))
	}
}

func TestAddFromSelection_TranscriptInheritsTimestamp(t *testing.T) {
	content := "[SRT]\n\n1\n00:00:10 --> 00:00:12\nSpeaker 1: hi\n"
	rawText, hs, mode := document.Parse(content, testTags)
	e := NewEngine()
	e.Load(rawText, hs, mode)

	start := strings.Index(rawText, "hi")
	e.AddFromSelection("hi", start)

	added := e.Highlights()[len(e.Highlights())-1]
	if added.Start != 10.0 || added.End != 12.0 {
		t.Errorf("Expected inherited times (10, 12), got (%v, %v)", added.Start, added.End)
	}
	if added.Header != "1\n00:00:10 --> 00:00:12" {
		t.Errorf("Unexpected header: %q", added.Header)
	}
}

func TestHighlightAllOccurrences(t *testing.T) {
	e := loadSimple(t, "Cat cat CAT dog")
	count := e.HighlightAllOccurrences("cat")

	if count != 3 {
		t.Fatalf("Expected 3 matches, got %d", count)
	}
	if len(e.Highlights()) != 3 {
		t.Fatalf("Expected 3 highlights, got %d", len(e.Highlights()))
	}
	// Matched text keeps the document's casing
	if e.Highlights()[2].Text != "CAT" {
		t.Errorf("Expected original casing preserved, got %q", e.Highlights()[2].Text)
	}
	verifyAnchors(t, e)
}

func TestHighlightAllOccurrences_EscapesPattern(t *testing.T) {
	e := loadSimple(t, "price (usd) and price (usd)")
	if count := e.HighlightAllOccurrences("(usd)"); count != 2 {
		t.Errorf("Expected literal match count 2, got %d", count)
	}
}

func TestHighlightAllOccurrences_NoneFound(t *testing.T) {
	e := loadSimple(t, "nothing to see")
	if count := e.HighlightAllOccurrences("zebra"); count != 0 {
		t.Fatalf("Expected 0 matches, got %d", count)
	}
	if e.IsModified() {
		t.Error("Expected no history push when nothing matched")
	}
}

func TestEditText_ShiftsLaterAnchors(t *testing.T) {
	e := loadSimple(t, "==aaa== middle ==bbb== end ==ccc==")
	hs := e.Highlights()

	e.EditText(hs[0], "lengthened")
	verifyAnchors(t, e)

	e.EditText(hs[1], "b")
	verifyAnchors(t, e)

	if !strings.Contains(e.RawText(), "lengthened middle b end ccc") {
		t.Errorf("Unexpected raw text after edits: %q", e.RawText())
	}
}

func TestEditText_DoesNotShiftEarlierOrTied(t *testing.T) {
	e := loadSimple(t, "abc def ghi")
	e.AddFromSelection("abc", 0)
	e.AddFromSelection("def", 4)

	// A second record anchored at the same offset as the edited one;
	// inserted directly because AddFromSelection would deduplicate it.
	tied := document.NewTimedHighlight(e.RawText(), "def", 4)
	e.adopt(tied)
	e.highlights = append(e.highlights, tied)

	first := e.Highlights()[0]
	target := e.Highlights()[1]
	e.EditText(target, "defdef")

	if first.StartPos != 0 {
		t.Errorf("Earlier anchor moved: %d", first.StartPos)
	}
	if tied.StartPos != 4 {
		t.Errorf("Tied anchor moved to %d; only strictly greater offsets shift", tied.StartPos)
	}
}

func TestEditText_NoOpWhenUnchanged(t *testing.T) {
	e := loadSimple(t, "==same==")
	before := len(e.history)
	e.EditText(e.Highlights()[0], "same")
	if len(e.history) != before {
		t.Error("Expected unchanged edit to push no history")
	}
}

func TestReorder_SimpleMode(t *testing.T) {
	e := loadSimple(t, "==a== ==b== ==c==")
	hs := e.Highlights()

	e.Reorder([]*highlight.Highlight{hs[2], hs[0], hs[1]})

	got := e.Highlights()
	if got[0].Text != "c" || got[1].Text != "a" || got[2].Text != "b" {
		t.Errorf("Unexpected order: %q %q %q", got[0].Text, got[1].Text, got[2].Text)
	}
	for i, h := range got {
		if h.SortKey != i {
			t.Errorf("Expected SortKey %d, got %d", i, h.SortKey)
		}
	}
}

func TestReorder_TranscriptModeNoOp(t *testing.T) {
	content := "[VTT]\n\n00:00:01.000 --> 00:00:02.000\n==a==\n\n00:00:03.000 --> 00:00:04.000\n==b==\n"
	rawText, hs, mode := document.Parse(content, testTags)
	e := NewEngine()
	e.Load(rawText, hs, mode)

	before := append([]*highlight.Highlight(nil), e.Highlights()...)
	keys := []int{before[0].SortKey, before[1].SortKey}

	e.Reorder([]*highlight.Highlight{before[1], before[0]})

	after := e.Highlights()
	if after[0] != before[0] || after[1] != before[1] {
		t.Error("Expected transcript reorder to leave the list unchanged")
	}
	if after[0].SortKey != keys[0] || after[1].SortKey != keys[1] {
		t.Error("Expected transcript reorder to leave sort keys unchanged")
	}
}

func TestRemove_ByIdentity(t *testing.T) {
	e := loadSimple(t, "dup dup")
	// Two structurally identical records at the same anchor
	e.AddFromSelection("dup", 0)
	twin := document.NewTimedHighlight(e.RawText(), "dup", 0)
	twin.SortKey = 0
	e.adopt(twin)
	e.highlights = append(e.highlights, twin)

	if len(e.Highlights()) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(e.Highlights()))
	}

	e.Remove([]*highlight.Highlight{twin})
	if len(e.Highlights()) != 1 {
		t.Fatalf("Expected 1 record after identity removal, got %d", len(e.Highlights()))
	}
	if e.Highlights()[0].ID == twin.ID {
		t.Error("Removed the wrong record")
	}
}

func TestRemoveAll(t *testing.T) {
	e := loadSimple(t, "==a== ==b==")
	e.RemoveAll()
	if len(e.Highlights()) != 0 {
		t.Errorf("Expected empty list, got %d", len(e.Highlights()))
	}
}

func TestDisplayOrder_TranscriptExcludesUntimed(t *testing.T) {
	content := "[SRT]\n\n==orphan==\n\n1\n00:00:05,000 --> 00:00:06,000\n==timed==\n"
	rawText, hs, mode := document.Parse(content, testTags)
	e := NewEngine()
	e.Load(rawText, hs, mode)

	ordered := e.DisplayOrder()
	if len(ordered) != 1 || ordered[0].Text != "timed" {
		t.Errorf("Expected only timed highlights in display order, got %v", ordered)
	}
	if len(e.Highlights()) != 2 {
		t.Error("Untimed highlight must remain in the master list")
	}
}

func TestDisplayOrder_SimpleBySortKey(t *testing.T) {
	e := loadSimple(t, "==x== ==y==")
	hs := e.Highlights()
	e.Reorder([]*highlight.Highlight{hs[1], hs[0]})

	ordered := e.DisplayOrder()
	if ordered[0].Text != "y" || ordered[1].Text != "x" {
		t.Errorf("Expected manual order, got %q then %q", ordered[0].Text, ordered[1].Text)
	}
}
