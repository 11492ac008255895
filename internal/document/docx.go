package document

import (
	"archive/zip"
	"encoding/xml"
	"strings"

	"github.com/emzakit/slothymarker/pkg/errors"
)

// DocxExtractor reads Word documents. Paragraph text is joined with blank
// lines; runs carrying a highlight property become highlighted substrings.
type DocxExtractor struct{}

func init() {
	Register(&DocxExtractor{})
}

func (e *DocxExtractor) Name() string         { return "Word" }
func (e *DocxExtractor) Extensions() []string { return []string{".docx"} }

type docxDocument struct {
	Body docxBody `xml:"body"`
}

type docxBody struct {
	Paragraphs []docxParagraph `xml:"p"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Props *docxRunProps `xml:"rPr"`
	Texts []string      `xml:"t"`
}

type docxRunProps struct {
	Highlight *docxHighlight `xml:"highlight"`
}

type docxHighlight struct {
	Val string `xml:"val,attr"`
}

func (e *DocxExtractor) Extract(path string) (string, []string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, errors.NewIOError("failed to open Word document", err).WithContext("path", path)
	}
	defer func() {
		_ = archive.Close()
	}()

	var doc docxDocument
	found := false
	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, errOpen := f.Open()
		if errOpen != nil {
			return "", nil, errors.NewIOError("failed to read Word document body", errOpen)
		}
		errDecode := xml.NewDecoder(rc).Decode(&doc)
		_ = rc.Close()
		if errDecode != nil {
			return "", nil, errors.NewParseError("failed to parse Word document body", errDecode).WithContext("path", path)
		}
		found = true
		break
	}
	if !found {
		return "", nil, errors.NewParseError("Word document has no body part", nil).WithContext("path", path)
	}

	paragraphs := make([]string, 0, len(doc.Body.Paragraphs))
	var highlighted []string
	for _, para := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, run := range para.Runs {
			text := strings.Join(run.Texts, "")
			b.WriteString(text)
			if run.Props != nil && run.Props.Highlight != nil && run.Props.Highlight.Val != "none" {
				if trimmed := strings.TrimSpace(text); trimmed != "" {
					highlighted = append(highlighted, trimmed)
				}
			}
		}
		paragraphs = append(paragraphs, b.String())
	}

	return strings.Join(paragraphs, "\n\n"), highlighted, nil
}
