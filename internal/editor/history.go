package editor

import (
	"github.com/emzakit/slothymarker/pkg/highlight"
)

// snapshot is an immutable copy of the full document state. Restoring hands
// out fresh deep copies, so live mutation can never corrupt stored history.
type snapshot struct {
	rawText    string
	highlights []*highlight.Highlight
}

// saveHistory pushes the current state. A push while the cursor sits before
// the end discards the diverged redo branch. clear establishes a fresh
// baseline snapshot at index 0, as done on load and save confirmation.
func (e *Engine) saveHistory(clear bool) {
	if clear {
		e.history = nil
		e.historyIndex = -1
	}
	if e.historyIndex < len(e.history)-1 {
		e.history = e.history[:e.historyIndex+1]
	}
	e.history = append(e.history, snapshot{
		rawText:    e.rawText,
		highlights: highlight.CloneList(e.highlights),
	})
	e.historyIndex = len(e.history) - 1
}

func (e *Engine) restore(s snapshot) {
	e.rawText = s.rawText
	e.highlights = highlight.CloneList(s.highlights)
}

// Undo steps back one snapshot. At the baseline it is a no-op.
func (e *Engine) Undo() {
	if e.historyIndex <= 0 {
		return
	}
	e.historyIndex--
	e.restore(e.history[e.historyIndex])
	e.notify()
}

// Redo steps forward one snapshot. At the newest snapshot it is a no-op.
func (e *Engine) Redo() {
	if e.historyIndex >= len(e.history)-1 {
		return
	}
	e.historyIndex++
	e.restore(e.history[e.historyIndex])
	e.notify()
}

// CanUndo reports whether an undo step exists
func (e *Engine) CanUndo() bool {
	return e.historyIndex > 0
}

// CanRedo reports whether a redo step exists
func (e *Engine) CanRedo() bool {
	return e.historyIndex < len(e.history)-1
}

// IsModified reports whether the state has diverged from the baseline
func (e *Engine) IsModified() bool {
	return e.historyIndex > 0
}

// ConfirmSave re-baselines history after a successful save, so IsModified
// turns false without losing the current state.
func (e *Engine) ConfirmSave() {
	e.saveHistory(true)
	e.notify()
}
