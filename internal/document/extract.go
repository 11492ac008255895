package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emzakit/slothymarker/pkg/errors"
	"github.com/emzakit/slothymarker/pkg/highlight"
)

// Extractor reads a binary document format and returns its plain text plus
// the highlighted substrings it carries, in document order. Positional
// fidelity is not required; the parser anchors each substring by search.
type Extractor interface {
	Name() string
	Extensions() []string
	Extract(path string) (string, []string, error)
}

var registry []Extractor

// Register adds a binary format extractor to the registry
func Register(e Extractor) {
	registry = append(registry, e)
}

func lookupExtractor(ext string) Extractor {
	for _, e := range registry {
		for _, known := range e.Extensions() {
			if ext == known {
				return e
			}
		}
	}
	return nil
}

// SupportedFormats returns registered extractor names with their extensions
func SupportedFormats() []string {
	out := []string{"Plain text (.txt, .md)"}
	for _, e := range registry {
		out = append(out, e.Name()+" ("+strings.Join(e.Extensions(), ", ")+")")
	}
	return out
}

// ParseFile loads a document from disk and parses it according to its
// extension. Text files go through tag detection and marker stripping;
// binary formats go through their registered extractor and are always
// simple-mode. An unrecognized extension is a format error.
func ParseFile(path string, tags []string) (string, []*highlight.Highlight, string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, "", errors.NewIOError("failed to read document", err).WithContext("path", path)
		}
		rawText, hs, mode := Parse(string(data), tags)
		return rawText, hs, mode, nil
	}

	if e := lookupExtractor(ext); e != nil {
		rawText, substrings, err := e.Extract(path)
		if err != nil {
			return "", nil, "", err
		}
		return rawText, FromExtraction(rawText, substrings), ModeSimple, nil
	}

	return "", nil, "", errors.NewFormatError(fmt.Sprintf("unsupported file type: '%s'", ext), nil).WithContext("path", path)
}
