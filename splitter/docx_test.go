package splitter

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestDOCXSplitter_Split(t *testing.T) {
	documentXML := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDOCX(t, documentXML)

	splitter := configure(t, NewDOCXSplitter(), Options{"by": 64})
	fragments := collectFragments(t, splitter, data, 0)
	if len(fragments) == 0 {
		t.Fatalf("Expected fragments, got 0")
	}
	text := fragments[0].Text()
	if !strings.Contains(text, "First paragraph") {
		t.Errorf("Expected extracted paragraph text, got %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Errorf("Expected paragraph break in extracted text, got %q", text)
	}
	if fragments[0].Kind != "docx" {
		t.Errorf("Expected Kind 'docx', got %s", fragments[0].Kind)
	}
}

func TestDOCXSplitter_NonArchiveFallback(t *testing.T) {
	splitter := configure(t, NewDOCXSplitter(), Options{})
	fragments := collectFragments(t, splitter, []byte("plain text, not a docx"), 0)
	if len(fragments) != 1 {
		t.Fatalf("Expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Text() != "plain text, not a docx" {
		t.Errorf("Expected printable passthrough, got %q", fragments[0].Text())
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
