package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings survive as
// their own paragraphs so section context reaches the model.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	title := titleFromFilename(filename)
	var paragraphs []string

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			heading := string(node.Text(src))
			if heading == "" {
				continue
			}
			// The first top-level heading doubles as the document title.
			if node.Level == 1 && title == titleFromFilename(filename) {
				title = heading
			}
			paragraphs = append(paragraphs, heading)
		default:
			if t := extractText(n, src); t != "" {
				paragraphs = append(paragraphs, t)
			}
		}
	}

	return &Document{
		Title: title,
		Text:  joinParagraphs(paragraphs),
	}, nil
}

// extractText gets the text content of a goldmark AST node. Nodes with
// children render from their inline content; childless blocks (code blocks)
// keep their raw source lines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.ChildCount() == 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
