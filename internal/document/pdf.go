package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/emzakit/slothymarker/pkg/errors"
)

// PDFExtractor reads PDF documents: page text plus the text of highlight
// annotations. Annotation text comes from the annotation's Contents entry;
// quad-geometry recovery of the underlying page text is not attempted, so
// highlights without a Contents string are skipped.
type PDFExtractor struct{}

func init() {
	Register(&PDFExtractor{})
}

func (e *PDFExtractor) Name() string         { return "PDF" }
func (e *PDFExtractor) Extensions() []string { return []string{".pdf"} }

func (e *PDFExtractor) Extract(path string) (rawText string, highlighted []string, err error) {
	// The pdf package panics on malformed input
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewParseError(fmt.Sprintf("failed to parse PDF: %v", r), nil).WithContext("path", path)
		}
	}()

	f, reader, errOpen := pdf.Open(path)
	if errOpen != nil {
		return "", nil, errors.NewIOError("failed to open PDF", errOpen).WithContext("path", path)
	}
	defer func() {
		_ = f.Close()
	}()

	plain, errText := reader.GetPlainText()
	if errText != nil {
		return "", nil, errors.NewParseError("failed to extract PDF text", errText).WithContext("path", path)
	}
	var buf bytes.Buffer
	if _, errRead := buf.ReadFrom(plain); errRead != nil {
		return "", nil, errors.NewParseError("failed to extract PDF text", errRead).WithContext("path", path)
	}

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		annots := page.V.Key("Annots")
		for j := 0; j < annots.Len(); j++ {
			annot := annots.Index(j)
			if annot.Key("Subtype").Name() != "Highlight" {
				continue
			}
			if text := strings.TrimSpace(annot.Key("Contents").Text()); text != "" {
				highlighted = append(highlighted, text)
			}
		}
	}

	return buf.String(), highlighted, nil
}
