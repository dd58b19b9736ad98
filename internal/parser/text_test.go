package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Consecutive blank lines should not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", doc.Text)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace separate paragraphs like blank lines.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", doc.Text)
	}
}

func TestForFile_SupportedAndUnsupported(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "b2.markdown", "c.csv", "d.html", "e.pdf", "f.docx"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("ForFile(%q): unexpected error: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("IsSupportedExtension(%q): expected true", name)
		}
	}
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("zip should not be supported")
	}
}
