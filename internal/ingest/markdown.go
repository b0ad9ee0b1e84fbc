package ingest

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/infographic/internal/doctree"
)

type markdownSource struct{}

// Extract nests sections by heading level. Each list item becomes its own
// paragraph since lists are the usual way steps are written down.
func (markdownSource) Extract(data []byte, title string) (*doctree.DocTree, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))
	o := newOutline()

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			o.heading(node.Level, string(node.Text(data)))
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				o.paragraph(blockText(item, data))
			}
		default:
			o.paragraph(blockText(n, data))
		}
	}
	return o.tree(title), nil
}

// blockText gets the text content of a goldmark AST node. Code and raw HTML
// blocks contribute their source lines; everything else its inline text.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch n.Kind() {
	case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if buf.Len() > 0 && c.Type() == ast.TypeBlock {
			buf.WriteByte('\n')
		}
		buf.WriteString(blockText(c, src))
	}
	return strings.TrimSpace(buf.String())
}
