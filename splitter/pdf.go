package splitter

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/viant/splitly/fragment"
)

// PDFSplitter splits PDF content into page-count chunks
type PDFSplitter struct {
	loader
	by int
}

// NewPDFSplitter creates a new PDFSplitter
func NewPDFSplitter() *PDFSplitter {
	return &PDFSplitter{by: 1}
}

// Configure applies strategy options
func (s *PDFSplitter) Configure(options Options) error {
	s.by = options.Int("by", s.by)
	if s.by <= 0 {
		return fmt.Errorf("invalid by option: %v", s.by)
	}
	return nil
}

// Split divides the document into fragments of at most by pages. Content that
// cannot be parsed as PDF degrades to printable text in size chunks.
func (s *PDFSplitter) Split(ctx context.Context, payload []byte, start int, emit EmitFunc) error {
	if len(payload) == 0 {
		return nil
	}
	index := start
	pages := extractPDFPages(payload)
	if len(pages) == 0 {
		text := extractPrintableText(payload)
		return splitBySize(text, 0, len(text), 4096, "pdf", &index, emit)
	}

	var full bytes.Buffer
	for i := 0; i < len(pages); i += s.by {
		to := i + s.by
		if to > len(pages) {
			to = len(pages)
		}
		chunk := bytes.NewBuffer(nil)
		for _, page := range pages[i:to] {
			chunk.WriteString(page)
			if !strings.HasSuffix(page, "\n") {
				chunk.WriteByte('\n')
			}
		}
		offset := full.Len()
		full.Write(chunk.Bytes())
		frag := fragment.New("pdf", offset, chunk.Bytes())
		frag.Index = index
		frag.Meta = map[string]string{
			"start_page": strconv.Itoa(i + 1),
			"end_page":   strconv.Itoa(to),
		}
		if err := emit(frag); err != nil {
			return err
		}
		index++
	}
	return nil
}

// extractPDFPages returns per-page plain text, or nil when not parseable
func extractPDFPages(payload []byte) []string {
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil
	}
	total := reader.NumPage()
	pages := make([]string, 0, total)
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			text = ""
		}
		pages = append(pages, text)
	}
	return pages
}

func extractPrintableText(in []byte) []byte {
	var out bytes.Buffer
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		if r == utf8.RuneError && size == 1 {
			if b := in[0]; isPrintableASCII(b) {
				out.WriteByte(b)
			}
			in = in[1:]
			continue
		}
		in = in[size:]
		if isPrintableRune(r) {
			out.WriteRune(r)
		}
	}
	return out.Bytes()
}

func isPrintableASCII(b byte) bool {
	return b == '\n' || b == '\r' || b == '\t' || (b >= 32 && b < 127)
}

func isPrintableRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return true
	}
	return r >= 32 && r <= 0x10FFFF && r != 127
}
