package engine

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentKind is the declared format of an uploaded résumé document.
type DocumentKind string

const (
	DocPDF  DocumentKind = "pdf"
	DocDOCX DocumentKind = "docx"
)

// KindFromFilename derives the document kind from the file extension.
// Anything other than .pdf/.docx fails with ErrUnsupportedFormat.
func KindFromFilename(name string) (DocumentKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return DocPDF, nil
	case ".docx":
		return DocDOCX, nil
	}
	return "", fmt.Errorf("%w: %s (only PDF and DOCX are supported)", ErrUnsupportedFormat, name)
}

// ExtractDocumentText decodes a résumé document into plain text.
// The size guard runs before any decode is attempted: inputs under
// MinDocumentBytes (likely corrupt) or over MaxDocumentBytes fail with
// ErrInvalidInput. Malformed content fails with ErrDecode.
func ExtractDocumentText(content []byte, kind DocumentKind) (string, error) {
	if len(content) < cfg.MinDocumentBytes {
		return "", fmt.Errorf("%w: %d bytes is below the %d byte minimum", ErrInvalidInput, len(content), cfg.MinDocumentBytes)
	}
	if len(content) > cfg.MaxDocumentBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrInvalidInput, len(content), cfg.MaxDocumentBytes)
	}

	switch kind {
	case DocPDF:
		return extractPDFText(content)
	case DocDOCX:
		return extractDocxText(content)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, kind)
}

// extractPDFText concatenates per-page text with newline separators,
// skipping pages that yield nothing.
func extractPDFText(content []byte) (text string, err error) {
	// The pdf library panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrDecode, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrDecode, err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// extractDocxText concatenates non-empty paragraph texts with newline
// separators.
func extractDocxText(content []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrDecode, err)
	}
	defer doc.Close()

	return strings.TrimSpace(strings.Join(docxParagraphs(doc.Editable().GetContent()), "\n")), nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// docxParagraphs splits WordprocessingML markup on paragraph
// boundaries and strips the remaining tags, keeping non-empty
// paragraphs in document order.
func docxParagraphs(markup string) []string {
	var paras []string
	for _, chunk := range strings.Split(markup, "</w:p>") {
		text := CleanText(xmlTagRe.ReplaceAllString(chunk, " "))
		if text != "" {
			paras = append(paras, text)
		}
	}
	return paras
}
