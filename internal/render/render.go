package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/emzakit/slothymarker/pkg/highlight"
)

// Document renders the raw text as HTML with every highlight wrapped in a
// clickable, styled span.
//
// Highlights are processed longest-text-first so a shorter highlight cannot
// match inside an already-wrapped longer one. Each span links to the
// highlight's stable index in the caller's unsorted list; that index maps a
// click back to the right record regardless of display order. A highlight whose text can no longer be found (for example after an
// overlapping replacement) is silently skipped for this pass.
func Document(rawText string, all, selected []*highlight.Highlight, highlightColor, selectionColor string) string {
	rendered := html.EscapeString(rawText)

	selectedIDs := make(map[int]struct{}, len(selected))
	for _, h := range selected {
		selectedIDs[h.ID] = struct{}{}
	}

	byLength := make([]int, len(all))
	for i := range all {
		byLength[i] = i
	}
	sort.SliceStable(byLength, func(a, b int) bool {
		return len(all[byLength[a]].Text) > len(all[byLength[b]].Text)
	})

	// First pass swaps each found occurrence for an opaque token, so a later
	// (shorter) highlight can never match inside an earlier one's markup.
	// NUL bytes cannot appear in escaped text.
	placed := make([]int, 0, len(all))
	for _, stableIndex := range byLength {
		h := all[stableIndex]
		search := html.EscapeString(h.Text)
		pos := strings.Index(rendered, search)
		if pos < 0 {
			continue
		}
		rendered = rendered[:pos] + token(stableIndex) + rendered[pos+len(search):]
		placed = append(placed, stableIndex)
	}

	rendered = strings.ReplaceAll(rendered, "\n", "<br>")

	for _, stableIndex := range placed {
		h := all[stableIndex]
		_, isSelected := selectedIDs[h.ID]
		span := styledSpan(h.Text, stableIndex, isSelected, highlightColor, selectionColor)
		rendered = strings.Replace(rendered, token(stableIndex), span, 1)
	}

	return rendered
}

func token(index int) string {
	return fmt.Sprintf("\x00%d\x00", index)
}

// styledSpan wraps highlight text in a clickable anchor carrying the stable
// index, so the shell can resolve clicks back to the highlight record.
func styledSpan(text string, index int, isSelected bool, highlightColor, selectionColor string) string {
	bg := highlightColor
	if isSelected {
		bg = selectionColor
	}
	style := fmt.Sprintf("background-color:%s;", bg)
	if isSelected {
		style += " color:white;"
	}

	escaped := strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
	return fmt.Sprintf(`<a href="slothy:highlight_%d" style="color:inherit; text-decoration:none;"><span style="%s">%s</span></a>`, index, style, escaped)
}
