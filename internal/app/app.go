package app

import (
	"fmt"
	"sort"

	"github.com/emzakit/slothymarker/internal/document"
	"github.com/emzakit/slothymarker/internal/editor"
	"github.com/emzakit/slothymarker/internal/export"
	"github.com/emzakit/slothymarker/internal/logger"
	"github.com/emzakit/slothymarker/pkg/config"
)

// App wires the parser, edit engine and exporters together on behalf of a
// shell (CLI here, a GUI elsewhere). It owns the current file path; document
// state and history live in the engine.
type App struct {
	cfg    *config.Config
	engine *editor.Engine

	currentPath string
}

// New creates an application around an empty engine
func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		engine: editor.NewEngine(),
	}
}

// Engine exposes the edit engine for shells and tests
func (a *App) Engine() *editor.Engine {
	return a.engine
}

// CurrentPath returns the path of the open document, empty when none
func (a *App) CurrentPath() string {
	return a.currentPath
}

// ProcessFile loads and parses a document, replacing the current state and
// resetting history to a fresh baseline. On failure the open document is
// closed first, so a half-parsed state is never left behind.
func (a *App) ProcessFile(path string) error {
	rawText, hs, mode, err := document.ParseFile(path, a.cfg.FileTags)
	if err != nil {
		a.CloseFile()
		return err
	}

	a.engine.Load(rawText, hs, mode)
	a.currentPath = path
	logger.Info(fmt.Sprintf("Loaded %d highlights.", len(hs)))
	return nil
}

// Reload re-parses the open file from scratch, replacing all history. This
// is the reaction to an external change notification.
func (a *App) Reload() error {
	if a.currentPath == "" {
		return nil
	}
	return a.ProcessFile(a.currentPath)
}

// CloseFile discards the document, its highlights and all history
func (a *App) CloseFile() {
	a.engine.Close()
	a.currentPath = ""
}

// ContentForSaving serializes the document back to marked text, re-inserting
// ==...== delimiters around every anchored highlight. Markers are inserted
// from the highest offset down so earlier anchors stay valid during the
// pass. includeHeader prepends the external-edit metadata header.
func (a *App) ContentForSaving(includeHeader bool) string {
	text := a.engine.RawText()

	anchored := make([]struct {
		start int
		size  int
	}, 0, len(a.engine.Highlights()))
	for _, h := range a.engine.Highlights() {
		if h.Anchored() {
			anchored = append(anchored, struct {
				start int
				size  int
			}{h.StartPos, len(h.Text)})
		}
	}
	sort.Slice(anchored, func(i, j int) bool { return anchored[i].start > anchored[j].start })

	for _, span := range anchored {
		end := span.start + span.size
		text = text[:span.start] + "==" + text[span.start:end] + "==" + text[end:]
	}

	if includeHeader {
		return a.cfg.ExternalEditHeader + "\n\n" + text
	}
	return text
}

// SaveToFile writes the marked document to disk and re-baselines history
func (a *App) SaveToFile(path string, includeHeader bool) error {
	if err := export.WriteFile(path, a.ContentForSaving(includeHeader)); err != nil {
		return err
	}
	a.engine.ConfirmSave()
	a.currentPath = path
	return nil
}

// ExportPlainText writes the highlight list as plain text
func (a *App) ExportPlainText(path string) error {
	return export.WriteFile(path, export.PlainText(a.engine.Highlights(), a.engine.Mode()))
}

// ExportSubtitle writes the highlight list as SRT or VTT
func (a *App) ExportSubtitle(path string, format export.Format) error {
	content := export.Subtitle(a.engine.Highlights(), format, export.Timing{
		FallbackDuration: a.cfg.FallbackDuration,
		MinimumDuration:  a.cfg.MinimumDuration,
	})
	return export.WriteFile(path, content)
}

// CopyHighlights places the plain-text export on the clipboard
func (a *App) CopyHighlights() error {
	return export.CopyToClipboard(export.PlainText(a.engine.Highlights(), a.engine.Mode()))
}
