package splitter

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXSplitter extracts text from DOCX content and splits it into size-bound
// fragments, breaking at paragraph boundaries when possible
type DOCXSplitter struct {
	loader
	by int
}

// NewDOCXSplitter creates a new DOCXSplitter
func NewDOCXSplitter() *DOCXSplitter {
	return &DOCXSplitter{by: 4096}
}

// Configure applies strategy options
func (s *DOCXSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split extracts the document text and divides it into fragments
func (s *DOCXSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	text := extractDOCXText(payload)
	if len(text) == 0 {
		text = extractPrintableText(payload)
	}
	index := start
	return splitBySize(text, 0, len(text), s.by, "docx", &index, emit)
}

// extractDOCXText pulls plain text out of the word/document.xml entry
func extractDOCXText(payload []byte) []byte {
	if len(payload) == 0 {
		return nil
	}
	archive, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil
	}
	for _, file := range archive.File {
		if !strings.EqualFold(file.Name, "word/document.xml") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		return docxTextFromXML(rc)
	}
	return nil
}

func docxTextFromXML(reader io.Reader) []byte {
	decoder := xml.NewDecoder(reader)
	var buf bytes.Buffer
	pendingBreak := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch actual := token.(type) {
		case xml.StartElement:
			switch actual.Name.Local {
			case "t", "instrText":
				var text string
				if err := decoder.DecodeElement(&text, &actual); err == nil {
					buf.WriteString(text)
					pendingBreak = false
				}
			case "tab":
				buf.WriteByte('\t')
				pendingBreak = false
			case "br", "cr":
				buf.WriteByte('\n')
				pendingBreak = true
			}
		case xml.EndElement:
			switch actual.Name.Local {
			case "p", "tr":
				if !pendingBreak && buf.Len() > 0 {
					buf.WriteByte('\n')
					pendingBreak = true
				}
			case "tc":
				buf.WriteByte('\t')
				pendingBreak = false
			}
		}
	}
	return buf.Bytes()
}
