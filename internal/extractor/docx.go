package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/BerylCAtieno/document-metadata-api/internal/format"
)

type docxExtractor struct{}

func NewDOCXExtractor() Extractor {
	return docxExtractor{}
}

func (docxExtractor) Extract(_ context.Context, r io.ReadSeeker) Result {
	data, err := readAll(r)
	if err != nil {
		return Failed(format.DOCX, err)
	}

	text, err := extractDOCX(data)
	if err != nil {
		return Failed(format.DOCX, err)
	}
	return Text(text)
}

func extractDOCX(data []byte) (string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid DOCX archive: %w", err)
	}

	// Find document.xml
	var documentFile *zip.File
	for _, file := range zipReader.File {
		if file.Name == "word/document.xml" {
			documentFile = file
			break
		}
	}

	if documentFile == nil {
		return "", fmt.Errorf("document.xml not found in archive")
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document.xml: %w", err)
	}
	defer xmlFile.Close()

	paragraphs, err := wordParagraphs(xmlFile)
	if err != nil {
		return "", fmt.Errorf("failed to parse document.xml: %w", err)
	}

	// One paragraph per line, in document order
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// wordParagraphs returns the text of every top-level body paragraph.
// Runs are collected at any depth, so text inside wrappers such as
// w:hyperlink is kept. w:tab and w:br render as "\t" and "\n"; page
// breaks and paragraph properties produce nothing.
func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		path       []string
		inText     bool
		sawRoot    bool
	)
	paraDepth := -1

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if !sawRoot {
				if name != "document" {
					return nil, fmt.Errorf("unexpected root element %q", name)
				}
				sawRoot = true
			}

			switch {
			case paraDepth < 0:
				if name == "p" && len(path) > 0 && path[len(path)-1] == "body" {
					paraDepth = len(path)
					current.Reset()
				}
			case inProperties(path[paraDepth:]):
			case name == "t":
				inText = true
			case name == "tab":
				current.WriteByte('\t')
			case name == "br" || name == "cr":
				if attr(t, "type") != "page" {
					current.WriteByte('\n')
				}
			}
			path = append(path, name)

		case xml.EndElement:
			path = path[:len(path)-1]
			if t.Name.Local == "t" {
				inText = false
			}
			if paraDepth >= 0 && len(path) == paraDepth {
				paragraphs = append(paragraphs, current.String())
				paraDepth = -1
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("no document element")
	}
	return paragraphs, nil
}

// inProperties reports whether the open elements below a paragraph are
// inside its pPr, whose tab stops must not render as text.
func inProperties(path []string) bool {
	for _, name := range path {
		if name == "pPr" {
			return true
		}
	}
	return false
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
