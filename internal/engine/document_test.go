package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     DocumentKind
		wantErr  bool
	}{
		{"pdf", "resume.pdf", DocPDF, false},
		{"docx", "resume.docx", DocDOCX, false},
		{"uppercase", "RESUME.PDF", DocPDF, false},
		{"doc rejected", "resume.doc", "", true},
		{"txt rejected", "resume.txt", "", true},
		{"no extension", "resume", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KindFromFilename(tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDocumentTextSizeGuards(t *testing.T) {
	// 5 bytes: under the corrupt-file floor, rejected before decode.
	_, err := ExtractDocumentText([]byte("tiny!"), DocPDF)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("undersized input: expected ErrInvalidInput, got %v", err)
	}

	oversized := bytes.Repeat([]byte("a"), cfg.MaxDocumentBytes+1)
	_, err = ExtractDocumentText(oversized, DocPDF)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("oversized input: expected ErrInvalidInput, got %v", err)
	}
}

func TestExtractDocumentTextMalformed(t *testing.T) {
	junk := bytes.Repeat([]byte("not a real document "), 10)

	_, err := ExtractDocumentText(junk, DocPDF)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("malformed pdf: expected ErrDecode, got %v", err)
	}

	_, err = ExtractDocumentText(junk, DocDOCX)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("malformed docx: expected ErrDecode, got %v", err)
	}
}

func TestDocxParagraphs(t *testing.T) {
	markup := `<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second</w:t></w:r><w:r><w:t> half</w:t></w:r></w:p>` +
		`<w:p></w:p>`
	got := docxParagraphs(markup)
	want := []string{"First paragraph", "Second half"}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDocxParagraphsEmpty(t *testing.T) {
	if got := docxParagraphs(""); len(got) != 0 {
		t.Errorf("empty markup gave %v", got)
	}
	if got := docxParagraphs("<w:p><w:pPr/></w:p>"); len(got) != 0 {
		t.Errorf("tag-only markup gave %v", got)
	}
}

func TestParseResumeUnsupportedFormat(t *testing.T) {
	_, err := ParseResume([]byte(strings.Repeat("x", 200)), "resume.odt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
